package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"payments", "installments", "expense_items", "expenses", "contacts", "accounts", "vendors", "expense_categories", "companies"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		companyName := "Demo Comercio Ltda"
		var companyID int64
		row := db.Raw("SELECT id FROM companies WHERE name = ?", companyName).Row()
		if err := row.Scan(&companyID); err != nil {
			if err := db.Exec("INSERT INTO companies (name, created_at, updated_at) VALUES (?, now(), now())", companyName).Error; err != nil {
				log.Fatalf("failed to insert demo company: %v", err)
			}
			row = db.Raw("SELECT id FROM companies WHERE name = ?", companyName).Row()
			if err := row.Scan(&companyID); err != nil {
				log.Fatalf("failed to read demo company id: %v", err)
			}
			fmt.Println("Seeded demo company:", companyName)
		} else {
			fmt.Println("demo company already exists; reusing it")
		}

		vendors := []struct {
			Name  string
			TaxID string
		}{
			{"Fornecedora ABC", "12.345.678/0001-90"},
			{"Distribuidora XYZ", "98.765.432/0001-10"},
			{"Servicos Gerais ME", "11.222.333/0001-44"},
		}
		for _, v := range vendors {
			var exists int
			row := db.Raw("SELECT 1 FROM vendors WHERE company_id = ? AND name = ?", companyID, v.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO vendors (company_id, name, tax_id, created_at, updated_at) VALUES (?, ?, ?, now(), now())", companyID, v.Name, v.TaxID).Error; err != nil {
				log.Fatalf("failed to insert vendor %s: %v", v.Name, err)
			}
			fmt.Println("Seeded vendor:", v.Name)
		}

		categories := []struct {
			Name string
			Desc string
		}{
			{"Aluguel", "Office and warehouse rent"},
			{"Fornecedores", "Supplier invoices"},
			{"Servicos", "Outsourced services"},
			{"Impostos", "Taxes and fees"},
		}
		for _, c := range categories {
			var exists int
			row := db.Raw("SELECT 1 FROM expense_categories WHERE company_id = ? AND name = ?", companyID, c.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO expense_categories (company_id, name, description, created_at, updated_at) VALUES (?, ?, ?, now(), now())", companyID, c.Name, c.Desc).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Println("Seeded category:", c.Name)
		}

		// Account tree: one bank root with a checking child, plus a cash drawer
		rootName := "Banco Principal"
		var rootID int64
		row = db.Raw("SELECT id FROM accounts WHERE company_id = ? AND name = ?", companyID, rootName).Row()
		if err := row.Scan(&rootID); err != nil {
			if err := db.Exec("INSERT INTO accounts (company_id, name, kind, created_at, updated_at) VALUES (?, ?, 'BANK', now(), now())", companyID, rootName).Error; err != nil {
				log.Fatalf("failed to insert root account: %v", err)
			}
			row = db.Raw("SELECT id FROM accounts WHERE company_id = ? AND name = ?", companyID, rootName).Row()
			if err := row.Scan(&rootID); err != nil {
				log.Fatalf("failed to read root account id: %v", err)
			}
			fmt.Println("Seeded account:", rootName)
		}

		childAccounts := []struct {
			Name string
			Kind string
		}{
			{"Conta Corrente", "BANK"},
			{"Carteira Digital", "WALLET"},
		}
		for _, a := range childAccounts {
			var exists int
			row := db.Raw("SELECT 1 FROM accounts WHERE company_id = ? AND name = ?", companyID, a.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO accounts (company_id, parent_id, name, kind, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", companyID, rootID, a.Name, a.Kind).Error; err != nil {
				log.Fatalf("failed to insert account %s: %v", a.Name, err)
			}
			fmt.Println("Seeded account:", a.Name)
		}

		var cashExists int
		row = db.Raw("SELECT 1 FROM accounts WHERE company_id = ? AND name = 'Caixa'", companyID).Row()
		if err := row.Scan(&cashExists); err != nil {
			if err := db.Exec("INSERT INTO accounts (company_id, name, kind, created_at, updated_at) VALUES (?, 'Caixa', 'CASH', now(), now())", companyID).Error; err != nil {
				log.Fatalf("failed to insert cash account: %v", err)
			}
			fmt.Println("Seeded account: Caixa")
		}

		contacts := []struct {
			Name  string
			Kind  string
			Email string
		}{
			{"Maria Souza", "CUSTOMER", "maria@example.com"},
			{"Joao Lima", "CUSTOMER", "joao@example.com"},
			{"Transportes Rapidos", "PARTNER", "contato@transportes.example.com"},
		}
		for _, c := range contacts {
			var exists int
			row := db.Raw("SELECT 1 FROM contacts WHERE company_id = ? AND name = ?", companyID, c.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO contacts (company_id, name, kind, email, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", companyID, c.Name, c.Kind, c.Email).Error; err != nil {
				log.Fatalf("failed to insert contact %s: %v", c.Name, err)
			}
			fmt.Println("Seeded contact:", c.Name)
		}

		fmt.Println("Seeding complete")
	},
}
