package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/intelfusion/case-similarity-api/databases/mocks"
	"github.com/intelfusion/case-similarity-api/models"
)

func TestGetSettingsHandlerStored(t *testing.T) {
	sdb := &mocks.SettingsDatabase{}
	sdb.On("FindOne", mock.Anything, "theft").Return(&models.ReportTypeSettings{
		ReportType:       "theft",
		ScoreThreshold:   0.9,
		Limit:            3,
		RadiusCoordinate: 500,
	}, nil)

	s := Settings{SDB: sdb, Config: testConfig()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/theft", nil)
	req = mux.SetURLVars(req, map[string]string{"report_type": "theft"})
	rr := httptest.NewRecorder()
	s.GetSettingsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.ReportTypeSettings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "theft", resp.ReportType)
	assert.Equal(t, 0.9, resp.ScoreThreshold)
}

func TestGetSettingsHandlerFallsBackToDefaults(t *testing.T) {
	sdb := &mocks.SettingsDatabase{}
	sdb.On("FindOne", mock.Anything, "flood").Return(nil, mongo.ErrNoDocuments)

	s := Settings{SDB: sdb, Config: testConfig()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/flood", nil)
	req = mux.SetURLVars(req, map[string]string{"report_type": "flood"})
	rr := httptest.NewRecorder()
	s.GetSettingsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.ReportTypeSettings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "flood", resp.ReportType)
	assert.Equal(t, 0.85, resp.ScoreThreshold)
	assert.Equal(t, 5, resp.Limit)
	assert.Equal(t, 300.0, resp.RadiusCoordinate)
}

func TestGetSettingsHandlerStoreFailure(t *testing.T) {
	sdb := &mocks.SettingsDatabase{}
	sdb.On("FindOne", mock.Anything, "theft").Return(nil, errors.New("mongo down"))

	s := Settings{SDB: sdb, Config: testConfig()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/theft", nil)
	req = mux.SetURLVars(req, map[string]string{"report_type": "theft"})
	rr := httptest.NewRecorder()
	s.GetSettingsHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestUpsertSettingsHandler(t *testing.T) {
	sdb := &mocks.SettingsDatabase{}
	sdb.On("Upsert", mock.Anything, models.ReportTypeSettings{
		ReportType:       "theft",
		ScoreThreshold:   0.9,
		Limit:            3,
		RadiusCoordinate: 500,
	}).Return(nil)

	s := Settings{SDB: sdb, Config: testConfig()}

	body, err := json.Marshal(models.ReportTypeSettings{
		ScoreThreshold:   0.9,
		Limit:            3,
		RadiusCoordinate: 500,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/theft", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"report_type": "theft"})
	rr := httptest.NewRecorder()
	s.UpsertSettingsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	sdb.AssertExpectations(t)
}

func TestUpsertSettingsHandlerRejectsBadThreshold(t *testing.T) {
	s := Settings{SDB: &mocks.SettingsDatabase{}, Config: testConfig()}

	body, err := json.Marshal(models.ReportTypeSettings{ScoreThreshold: 1.5})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/theft", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"report_type": "theft"})
	rr := httptest.NewRecorder()
	s.UpsertSettingsHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteSettingsHandler(t *testing.T) {
	sdb := &mocks.SettingsDatabase{}
	sdb.On("DeleteOne", mock.Anything, "theft").Return(nil)

	s := Settings{SDB: sdb, Config: testConfig()}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/settings/theft", nil)
	req = mux.SetURLVars(req, map[string]string{"report_type": "theft"})
	rr := httptest.NewRecorder()
	s.DeleteSettingsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	sdb.AssertExpectations(t)
}
