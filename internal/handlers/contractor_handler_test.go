package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estate_backend/internal/services"
	"estate_backend/internal/services/dto"
	"estate_backend/internal/validator"
	"estate_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeContractorService records what the handler passed through.
type fakeContractorService struct {
	lastCreateReq *dto.CreateContractorRequest
	lastForm      *multipart.Form
}

func (f *fakeContractorService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateContractorRequest, form *multipart.Form) (*dto.ContractorMutationResponse, error) {
	f.lastCreateReq = req
	f.lastForm = form
	return &dto.ContractorMutationResponse{
		Contractor: dto.ContractorResponse{ID: "c-1", Name: req.Name},
	}, nil
}

func (f *fakeContractorService) GetByID(db *gorm.DB, id string) (*dto.ContractorResponse, error) {
	return &dto.ContractorResponse{ID: id}, nil
}

func (f *fakeContractorService) List(db *gorm.DB, query *dto.ContractorListQuery) (*dto.ContractorListResponse, error) {
	return &dto.ContractorListResponse{}, nil
}

func (f *fakeContractorService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateContractorRequest, form *multipart.Form) (*dto.ContractorMutationResponse, error) {
	f.lastForm = form
	return &dto.ContractorMutationResponse{Contractor: dto.ContractorResponse{ID: id}}, nil
}

func (f *fakeContractorService) SetVerified(db *gorm.DB, id string, verified bool) error {
	return nil
}

func (f *fakeContractorService) Delete(db *gorm.DB, id string) error { return nil }

var _ services.ContractorService = (*fakeContractorService)(nil)

func newContractorTestRouter(t *testing.T, svc services.ContractorService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*gpvalidator.Validate); ok {
		validator.RegisterCustomRules(v)
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), (*gorm.DB)(nil))
		c.Next()
	})

	base := NewBaseHandler(validator.New())
	handler := NewContractorHandler(base, svc)
	router.POST("/contractors", handler.Create)
	return router
}

func TestContractorCreateMultipart(t *testing.T) {
	svc := &fakeContractorService{}
	router := newContractorTestRouter(t, svc)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "ACME Renovations"))
	require.NoError(t, w.WriteField("phone", "+919876543210"))
	require.NoError(t, w.WriteField("location", "Pune"))
	require.NoError(t, w.WriteField("serviceType", "renovation"))
	require.NoError(t, w.WriteField("portfolio[0][title]", "Kitchen Remodel"))
	require.NoError(t, w.WriteField("portfolio[0][description]", "Full renovation"))
	require.NoError(t, w.WriteField("portfolio[0][completedOn]", "2023-05-01"))
	require.NoError(t, w.WriteField("portfolio[0][location]", "Pune"))
	fw, err := w.CreateFormFile("portfolio[0][images]", "img1.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/contractors", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, svc.lastCreateReq)
	assert.Equal(t, "ACME Renovations", svc.lastCreateReq.Name)
	assert.Empty(t, svc.lastCreateReq.Portfolio)

	// The raw multipart form travels to the service for reconstruction.
	require.NotNil(t, svc.lastForm)
	assert.Equal(t, []string{"Kitchen Remodel"}, svc.lastForm.Value["portfolio[0][title]"])
	require.Len(t, svc.lastForm.File["portfolio[0][images]"], 1)
	assert.Equal(t, "img1.jpg", svc.lastForm.File["portfolio[0][images]"][0].Filename)
}

func TestContractorCreateJSON(t *testing.T) {
	svc := &fakeContractorService{}
	router := newContractorTestRouter(t, svc)

	payload := map[string]interface{}{
		"name":        "ACME Renovations",
		"phone":       "+919876543210",
		"location":    "Pune",
		"serviceType": "renovation",
		"portfolio": []map[string]interface{}{
			{
				"title":       "Kitchen Remodel",
				"description": "Full renovation",
				"completedOn": "2023-05-01",
				"location":    "Pune",
				"images":      []string{"https://media.example.com/img1.jpg"},
			},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/contractors", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// JSON requests skip the multipart path entirely.
	assert.Nil(t, svc.lastForm)
	require.NotNil(t, svc.lastCreateReq)
	require.Len(t, svc.lastCreateReq.Portfolio, 1)
	assert.Equal(t, "Kitchen Remodel", svc.lastCreateReq.Portfolio[0].Title)
}

func TestContractorCreateRejectsMissingFields(t *testing.T) {
	svc := &fakeContractorService{}
	router := newContractorTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/contractors",
		strings.NewReader(`{"name": "No Phone"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.lastCreateReq)
}
