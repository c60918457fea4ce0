package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barbershop-backend/models"
	"barbershop-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBooking struct {
	createErr   error
	created     *models.Appointment
	cancelErr   error
	completeErr error
	updateErr   error
	deleteErr   error
}

func (s *stubBooking) CreateAppointment(ctx context.Context, clientID uuid.UUID, in services.CreateAppointmentInput) (*models.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubBooking) CancelAppointment(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID) error {
	return s.cancelErr
}

func (s *stubBooking) CompleteAppointment(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID, notes string) (*models.Appointment, error) {
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	return &models.Appointment{ID: id, Status: models.AppointmentCompleted, Notes: notes}, nil
}

func (s *stubBooking) UpdateAppointment(ctx context.Context, id uuid.UUID, in services.UpdateAppointmentInput) (*models.Appointment, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Appointment{ID: id}, nil
}

func (s *stubBooking) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.deleteErr
}

func newTestRouter(booking BookingWorkflow, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID.String())
		c.Set("role", role)
	})

	controller := NewAppointmentController(booking, nil)
	r.POST("/appointments", controller.CreateAppointment)
	r.PATCH("/appointments/:id/cancel", controller.CancelAppointment)
	r.PATCH("/appointments/:id/complete", controller.CompleteAppointment)
	return r
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	clientID := uuid.New()

	body := func() *bytes.Buffer {
		payload, _ := json.Marshal(gin.H{
			"serviceId":       uuid.New(),
			"masterId":        uuid.New(),
			"appointmentDate": "2024-06-10",
			"startTime":       "10:00",
		})
		return bytes.NewBuffer(payload)
	}

	t.Run("created", func(t *testing.T) {
		stub := &stubBooking{created: &models.Appointment{ID: uuid.New(), Status: models.AppointmentScheduled}}
		r := newTestRouter(stub, clientID, models.RoleClient)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/appointments", body())
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		stub := &stubBooking{}
		r := newTestRouter(stub, clientID, models.RoleClient)

		payload, _ := json.Marshal(gin.H{"startTime": "10:00"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		stub := &stubBooking{}
		r := newTestRouter(stub, clientID, models.RoleClient)

		payload, _ := json.Marshal(gin.H{
			"serviceId":       uuid.New(),
			"masterId":        uuid.New(),
			"appointmentDate": "10.06.2024",
			"startTime":       "10:00",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("workflow errors map to statuses", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{services.ErrSlotUnavailable, http.StatusBadRequest},
			{services.ErrConflict, http.StatusConflict},
			{services.ErrNotFound, http.StatusNotFound},
			{services.ErrInvalidRequest, http.StatusBadRequest},
			{assert.AnError, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			stub := &stubBooking{createErr: tc.err}
			r := newTestRouter(stub, clientID, models.RoleClient)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/appointments", body())
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code, tc.err.Error())
		}
	})
}

func TestCancelAppointmentEndpoint(t *testing.T) {
	clientID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		r := newTestRouter(&stubBooking{}, clientID, models.RoleClient)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+uuid.NewString()+"/cancel", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		r := newTestRouter(&stubBooking{}, clientID, models.RoleClient)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/appointments/not-a-uuid/cancel", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forbidden and state errors", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{services.ErrForbidden, http.StatusForbidden},
			{services.ErrInvalidStateTransition, http.StatusBadRequest},
			{services.ErrNotFound, http.StatusNotFound},
		}
		for _, tc := range cases {
			r := newTestRouter(&stubBooking{cancelErr: tc.err}, clientID, models.RoleClient)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/appointments/"+uuid.NewString()+"/cancel", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code, tc.err.Error())
		}
	})
}

func TestCompleteAppointmentEndpoint(t *testing.T) {
	masterID := uuid.New()

	t.Run("passes notes through", func(t *testing.T) {
		r := newTestRouter(&stubBooking{}, masterID, models.RoleMaster)

		payload, _ := json.Marshal(gin.H{"notes": "trim and shave"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+uuid.NewString()+"/complete", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Appointment models.Appointment `json:"appointment"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "trim and shave", resp.Appointment.Notes)
		assert.Equal(t, models.AppointmentCompleted, resp.Appointment.Status)
	})

	t.Run("body is optional", func(t *testing.T) {
		r := newTestRouter(&stubBooking{}, masterID, models.RoleMaster)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+uuid.NewString()+"/complete", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
