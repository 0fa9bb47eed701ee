package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"copiadora_xpto/internal/adapter/http/handlers/mocks"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newServiceRouter(h *ServiceHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/services", h.ListServices)
	r.GET("/v1/services/stats", h.GetServiceStats)
	r.GET("/v1/services/:id", h.GetService)
	r.POST("/v1/services", h.CreateService)
	r.PATCH("/v1/services/:id", h.UpdateService)
	r.DELETE("/v1/services/:id", h.DeleteService)
	return r
}

func TestServiceHandler_ListServices(t *testing.T) {
	t.Run("binds filters and pagination", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIServiceUseCase(ctrl)
		r := newServiceRouter(NewServiceHandler(uc))

		want := usecase.ServiceQuery{CityID: "city-1", AcquisitionType: entities.AcquisitionTypeRent, Page: 2, Limit: 5}
		uc.EXPECT().FindAll(gomock.Any(), want).
			Return(usecase.ServicePage{Data: []entities.Service{{ID: "svc-1"}}, Total: 6, Page: 2, Limit: 5, TotalPages: 2}, nil)

		w := serve(r, http.MethodGet, "/v1/services?city_id=city-1&acquisition_type=RENT&page=2&limit=5", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["totalPages"] != float64(2) || body["total"] != float64(6) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("non numeric page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIServiceUseCase(ctrl)
		r := newServiceRouter(NewServiceHandler(uc))

		if w := serve(r, http.MethodGet, "/v1/services?page=abc", nil); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid acquisition type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIServiceUseCase(ctrl)
		r := newServiceRouter(NewServiceHandler(uc))

		uc.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return(usecase.ServicePage{}, usecase.ErrInvalidAcquisitionType)

		if w := serve(r, http.MethodGet, "/v1/services?acquisition_type=LEASE", nil); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestServiceHandler_GetAndStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIServiceUseCase(ctrl)
	r := newServiceRouter(NewServiceHandler(uc))

	uc.EXPECT().GetStats(gomock.Any()).Return(entities.ServiceStats{Total: 4, Overdue: 1}, nil)
	uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Service{}, fmt.Errorf("%w (id missing)", usecase.ErrServiceNotFound))

	w := serve(r, http.MethodGet, "/v1/services/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &stats)
	if stats["total"] != float64(4) || stats["overdue"] != float64(1) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	if w := serve(r, http.MethodGet, "/v1/services/missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestServiceHandler_CreateService(t *testing.T) {
	t.Run("missing required ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIServiceUseCase(ctrl)
		r := newServiceRouter(NewServiceHandler(uc))

		if w := serve(r, http.MethodPost, "/v1/services", bytes.NewBufferString(`{"description":"x"}`)); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIServiceUseCase(ctrl)
		r := newServiceRouter(NewServiceHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in usecase.CreateServiceInput) (entities.Service, error) {
				if in.ClientID != "cli-1" || in.CategoryID != "cat-1" || len(in.Steps) != 1 || in.Steps[0].Name != "Diagnose" {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Service{ID: "svc-1", Status: entities.ServiceStatusPending}, nil
			})

		payload := `{"client_id":"cli-1","category_id":"cat-1","steps":[{"name":"Diagnose","responsable_id":7}]}`
		w := serve(r, http.MethodPost, "/v1/services", bytes.NewBufferString(payload))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIServiceUseCase(ctrl)
		r := newServiceRouter(NewServiceHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Service{}, usecase.ErrClientNotFound)

		w := serve(r, http.MethodPost, "/v1/services", bytes.NewBufferString(`{"client_id":"x","category_id":"y"}`))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestServiceHandler_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIServiceUseCase(ctrl)
	r := newServiceRouter(NewServiceHandler(uc))

	uc.EXPECT().Update(gomock.Any(), "svc-1", gomock.Any()).
		DoAndReturn(func(_ any, id string, in usecase.UpdateServiceInput) (entities.Service, error) {
			if in.Status == nil || *in.Status != entities.ServiceStatusCancelled {
				t.Fatalf("unexpected status: %v", in.Status)
			}
			if in.Steps != nil {
				t.Fatalf("expected steps untouched")
			}
			return entities.Service{}, usecase.ErrServiceReasonRequired
		})
	uc.EXPECT().Remove(gomock.Any(), "svc-1").Return(nil)

	if w := serve(r, http.MethodPatch, "/v1/services/svc-1", bytes.NewBufferString(`{"status":"CANCELLED"}`)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/v1/services/svc-1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}
