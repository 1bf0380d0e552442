package rest

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

var _ = Describe("Health Handler", func() {
	var (
		db      *sql.DB
		handler *HealthHandler
	)

	BeforeEach(func() {
		gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		db, err = gormDB.DB()
		Expect(err).NotTo(HaveOccurred())

		handler = NewHealthHandler(db)
	})

	Describe("GET /ping", func() {
		It("should report liveness without touching the database", func() {
			w := httptest.NewRecorder()
			handler.Ping(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var body map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("status", "ok"))
		})
	})

	Describe("GET /health", func() {
		It("should report the database up with pool details", func() {
			w := httptest.NewRecorder()
			handler.Readiness(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp readinessResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal(statusUp))
			Expect(resp.Checks).To(HaveKey("database"))
			Expect(resp.Checks["database"].Details).To(HaveKey("open_connections"))
		})

		It("should return 503 when the database is unreachable", func() {
			Expect(db.Close()).To(Succeed())

			w := httptest.NewRecorder()
			handler.Readiness(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

			var resp readinessResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal(statusDown))
			Expect(resp.Checks["database"].Error).NotTo(BeEmpty())
		})
	})
})
