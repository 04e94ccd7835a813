package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
	"assetsnapshot/internal/services"
	"assetsnapshot/internal/validator"
)

// --- mock bank service ---

type mockBankService struct {
	listBanksFn  func() ([]services.BankSummary, error)
	getBankFn    func(id uint) (*services.BankDetail, error)
	createBankFn func(fields services.BankCreateFields) (*models.Bank, error)
	updateBankFn func(id uint, fields services.BankUpdateFields) (*models.Bank, error)
	deleteBankFn func(id uint) error
}

func (m *mockBankService) ListBanks() ([]services.BankSummary, error) {
	if m.listBanksFn != nil {
		return m.listBanksFn()
	}
	return []services.BankSummary{}, nil
}

func (m *mockBankService) GetBank(id uint) (*services.BankDetail, error) {
	if m.getBankFn != nil {
		return m.getBankFn(id)
	}
	return &services.BankDetail{}, nil
}

func (m *mockBankService) CreateBank(fields services.BankCreateFields) (*models.Bank, error) {
	if m.createBankFn != nil {
		return m.createBankFn(fields)
	}
	return &models.Bank{}, nil
}

func (m *mockBankService) UpdateBank(id uint, fields services.BankUpdateFields) (*models.Bank, error) {
	if m.updateBankFn != nil {
		return m.updateBankFn(id, fields)
	}
	return &models.Bank{}, nil
}

func (m *mockBankService) DeleteBank(id uint) error {
	if m.deleteBankFn != nil {
		return m.deleteBankFn(id)
	}
	return nil
}

var _ services.BankServicer = (*mockBankService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %v", code, errObj["code"])
	}
}

func setupBankRouter(handler *BankHandler) *gin.Engine {
	r := gin.New()
	r.GET("/accounts", handler.ListBanks)
	r.GET("/accounts/:id", handler.GetBank)
	r.POST("/accounts", handler.CreateBank)
	r.PUT("/accounts/:id", handler.UpdateBank)
	r.DELETE("/accounts/:id", handler.DeleteBank)
	return r
}

func TestBankHandler_CreateBank(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		bankSvc := &mockBankService{
			createBankFn: func(fields services.BankCreateFields) (*models.Bank, error) {
				return &models.Bank{ID: 1, OwnerID: fields.OwnerID, Name: fields.Name}, nil
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "POST", "/accounts", `{"owner_id":1,"name":"Chase","bank_name":"Chase Bank"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		bank := result["account"].(map[string]interface{})
		if bank["name"] != "Chase" {
			t.Errorf("expected Chase, got %v", bank["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupBankRouter(NewBankHandler(&mockBankService{}))

		rec := doRequest(r, "POST", "/accounts", `{"owner_id":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid logo color", func(t *testing.T) {
		r := setupBankRouter(NewBankHandler(&mockBankService{}))

		rec := doRequest(r, "POST", "/accounts", `{"owner_id":1,"name":"Chase","logo_color":"blue"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on missing owner", func(t *testing.T) {
		bankSvc := &mockBankService{
			createBankFn: func(services.BankCreateFields) (*models.Bank, error) {
				return nil, apperrors.ErrOwnerNotFound
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "POST", "/accounts", `{"owner_id":99,"name":"Chase"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "OWNER_NOT_FOUND")
	})
}

func TestBankHandler_GetBank(t *testing.T) {
	t.Run("returns 200 with detail", func(t *testing.T) {
		bankSvc := &mockBankService{
			getBankFn: func(id uint) (*services.BankDetail, error) {
				return &services.BankDetail{Bank: models.Bank{ID: id, Name: "Chase"}, OwnerName: "Me"}, nil
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "GET", "/accounts/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		bank := result["account"].(map[string]interface{})
		if bank["owner_name"] != "Me" {
			t.Errorf("expected owner_name Me, got %v", bank["owner_name"])
		}
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		r := setupBankRouter(NewBankHandler(&mockBankService{}))

		rec := doRequest(r, "GET", "/accounts/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on missing bank", func(t *testing.T) {
		bankSvc := &mockBankService{
			getBankFn: func(uint) (*services.BankDetail, error) {
				return nil, apperrors.ErrBankNotFound
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "GET", "/accounts/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBankHandler_UpdateBank(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var got services.BankUpdateFields
		bankSvc := &mockBankService{
			updateBankFn: func(id uint, fields services.BankUpdateFields) (*models.Bank, error) {
				got = fields
				return &models.Bank{ID: id}, nil
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "PUT", "/accounts/1", `{"name":"Renamed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Name == nil || *got.Name != "Renamed" {
			t.Errorf("expected name pointer set, got %v", got.Name)
		}
		if got.Country != nil {
			t.Errorf("expected country pointer nil, got %v", *got.Country)
		}
	})
}

func TestBankHandler_ListBanks(t *testing.T) {
	bankSvc := &mockBankService{
		listBanksFn: func() ([]services.BankSummary, error) {
			return []services.BankSummary{
				{Bank: models.Bank{ID: 1, Name: "Chase"}, OwnerName: "Me", TotalBalance: 8200.50},
			}, nil
		},
	}
	r := setupBankRouter(NewBankHandler(bankSvc))

	rec := doRequest(r, "GET", "/accounts", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	banks := result["accounts"].([]interface{})
	if len(banks) != 1 {
		t.Fatalf("expected 1 bank, got %d", len(banks))
	}
	bank := banks[0].(map[string]interface{})
	if bank["total_balance"] != 8200.50 {
		t.Errorf("expected total_balance 8200.50, got %v", bank["total_balance"])
	}
}
