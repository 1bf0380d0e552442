package expense

import (
	expenseDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/expense"
)

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	dm := &expenseDatamodel.Expense{
		ID:             e.ID,
		CompanyID:      e.CompanyID,
		VendorID:       e.VendorID,
		CategoryID:     e.CategoryID,
		Description:    e.Description,
		CompetenceDate: e.CompetenceDate,
		IssueDate:      e.IssueDate,
		TotalNet:       e.TotalNet,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		DeletedAt:      e.DeletedAt,
	}
	for _, it := range e.Items {
		dm.Items = append(dm.Items, expenseDatamodel.ExpenseItem{
			ID:        it.ID,
			ExpenseID: it.ExpenseID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Total:     it.Total,
			DeletedAt: it.DeletedAt,
		})
	}
	for _, inst := range e.Installments {
		dm.Installments = append(dm.Installments, toInstallmentDataModel(inst))
	}
	return dm
}

func toInstallmentDataModel(inst Installment) expenseDatamodel.Installment {
	dmInst := expenseDatamodel.Installment{
		ID:        inst.ID,
		ExpenseID: inst.ExpenseID,
		Number:    inst.Number,
		DueDate:   inst.DueDate,
		Amount:    inst.Amount,
		Status:    string(inst.Status),
		DeletedAt: inst.DeletedAt,
	}
	for _, p := range inst.Payments {
		dmInst.Payments = append(dmInst.Payments, expenseDatamodel.Payment{
			ID:            p.ID,
			InstallmentID: p.InstallmentID,
			AccountID:     p.AccountID,
			PaidAt:        p.PaidAt,
			Amount:        p.Amount,
			Method:        string(p.Method),
			Note:          p.Note,
			DeletedAt:     p.DeletedAt,
		})
	}
	return dmInst
}

func FromDataModel(dm *expenseDatamodel.Expense) *Expense {
	e := &Expense{
		ID:             dm.ID,
		CompanyID:      dm.CompanyID,
		VendorID:       dm.VendorID,
		CategoryID:     dm.CategoryID,
		Description:    dm.Description,
		CompetenceDate: dm.CompetenceDate,
		IssueDate:      dm.IssueDate,
		TotalNet:       dm.TotalNet,
		Status:         ExpenseStatus(dm.Status),
		CreatedAt:      dm.CreatedAt,
		UpdatedAt:      dm.UpdatedAt,
		DeletedAt:      dm.DeletedAt,
	}
	for _, it := range dm.Items {
		e.Items = append(e.Items, ExpenseItem{
			ID:        it.ID,
			ExpenseID: it.ExpenseID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Total:     it.Total,
			DeletedAt: it.DeletedAt,
		})
	}
	for _, inst := range dm.Installments {
		domInst := Installment{
			ID:        inst.ID,
			ExpenseID: inst.ExpenseID,
			Number:    inst.Number,
			DueDate:   inst.DueDate,
			Amount:    inst.Amount,
			Status:    InstallmentStatus(inst.Status),
			DeletedAt: inst.DeletedAt,
		}
		for _, p := range inst.Payments {
			domInst.Payments = append(domInst.Payments, Payment{
				ID:            p.ID,
				InstallmentID: p.InstallmentID,
				AccountID:     p.AccountID,
				PaidAt:        p.PaidAt,
				Amount:        p.Amount,
				Method:        PaymentMethod(p.Method),
				Note:          p.Note,
				DeletedAt:     p.DeletedAt,
			})
		}
		e.Installments = append(e.Installments, domInst)
	}
	return e
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, dm := range expenses {
		result[i] = FromDataModel(dm)
	}
	return result
}
