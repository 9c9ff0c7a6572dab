package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newContactTestService(t *testing.T) (*ContactService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContactService(db), mock
}

func TestSubmitContactForm(t *testing.T) {
	t.Run("stores the enquiry", func(t *testing.T) {
		service, mock := newContactTestService(t)

		mock.ExpectExec("INSERT INTO contacts").
			WithArgs(sqlmock.AnyArg(), "Priya Sharma", "priya@example.com", "9812345678",
				"Interested in a 3 BHK at Skyline Heights", "skyline-heights").
			WillReturnResult(sqlmock.NewResult(1, 1))

		body := `{"name":"Priya Sharma","email":"Priya@Example.com","phone":"9812345678",
			"message":"Interested in a 3 BHK at Skyline Heights","projectInterest":"skyline-heights"}`
		rec := httptest.NewRecorder()
		service.SubmitContactForm(rec, httptest.NewRequest("POST", "/contact", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("message too short", func(t *testing.T) {
		service, _ := newContactTestService(t)

		body := `{"name":"Priya Sharma","email":"priya@example.com","phone":"9812345678","message":"hi"}`
		rec := httptest.NewRecorder()
		service.SubmitContactForm(rec, httptest.NewRequest("POST", "/contact", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		service, mock := newContactTestService(t)

		mock.ExpectExec("INSERT INTO contacts").
			WillReturnError(assert.AnError)

		body := `{"name":"Priya Sharma","email":"priya@example.com","phone":"9812345678",
			"message":"Interested in a 3 BHK at Skyline Heights"}`
		rec := httptest.NewRecorder()
		service.SubmitContactForm(rec, httptest.NewRequest("POST", "/contact", strings.NewReader(body)))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestSubscribeNewsletter(t *testing.T) {
	t.Run("new subscriber", func(t *testing.T) {
		service, mock := newContactTestService(t)

		mock.ExpectExec("INSERT INTO newsletter_subscribers").
			WithArgs(sqlmock.AnyArg(), "priya@example.com").
			WillReturnResult(sqlmock.NewResult(1, 1))

		body := `{"email":"Priya@Example.com"}`
		rec := httptest.NewRecorder()
		service.SubscribeNewsletter(rec, httptest.NewRequest("POST", "/newsletter/subscribe", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid email", func(t *testing.T) {
		service, _ := newContactTestService(t)

		body := `{"email":"not-an-email"}`
		rec := httptest.NewRecorder()
		service.SubscribeNewsletter(rec, httptest.NewRequest("POST", "/newsletter/subscribe", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
