package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kakebo/internal/domain/notification"
)

// MockNotificationRepo implements notification.Repository for testing
type MockNotificationRepo struct {
	UpsertDeviceTokenFunc       func(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error)
	GetActiveTokensByUserIDFunc func(ctx context.Context, userID int64) ([]*notification.DeviceToken, error)
	GetAllActiveTokensFunc      func(ctx context.Context) ([]*notification.DeviceToken, error)
	DeactivateTokenFunc         func(ctx context.Context, token string) error
	ReassignTokenFunc           func(ctx context.Context, token string, newUserID int64) error
	GetPreferencesFunc          func(ctx context.Context, userID int64) (*notification.NotificationPreference, error)
	UpsertPreferencesFunc       func(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error)
	CreateNotificationFunc      func(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error)
	ListByUserIDFunc            func(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error)
	MarkOpenedFunc              func(ctx context.Context, notificationID string, userID int64) error
}

func (m *MockNotificationRepo) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	if m.UpsertDeviceTokenFunc != nil {
		return m.UpsertDeviceTokenFunc(ctx, params)
	}
	return &notification.DeviceToken{Token: params.Token, DeviceType: params.DeviceType, UserID: params.UserID}, nil
}

func (m *MockNotificationRepo) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	if m.GetActiveTokensByUserIDFunc != nil {
		return m.GetActiveTokensByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationRepo) GetAllActiveTokens(ctx context.Context) ([]*notification.DeviceToken, error) {
	if m.GetAllActiveTokensFunc != nil {
		return m.GetAllActiveTokensFunc(ctx)
	}
	return nil, nil
}

func (m *MockNotificationRepo) DeactivateToken(ctx context.Context, token string) error {
	if m.DeactivateTokenFunc != nil {
		return m.DeactivateTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockNotificationRepo) ReassignToken(ctx context.Context, token string, newUserID int64) error {
	if m.ReassignTokenFunc != nil {
		return m.ReassignTokenFunc(ctx, token, newUserID)
	}
	return nil
}

func (m *MockNotificationRepo) GetPreferences(ctx context.Context, userID int64) (*notification.NotificationPreference, error) {
	if m.GetPreferencesFunc != nil {
		return m.GetPreferencesFunc(ctx, userID)
	}
	return nil, notification.ErrPreferencesNotFound
}

func (m *MockNotificationRepo) UpsertPreferences(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error) {
	if m.UpsertPreferencesFunc != nil {
		return m.UpsertPreferencesFunc(ctx, userID, params)
	}
	return &notification.NotificationPreference{UserID: userID}, nil
}

func (m *MockNotificationRepo) CreateNotification(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error) {
	if m.CreateNotificationFunc != nil {
		return m.CreateNotificationFunc(ctx, params)
	}
	return &notification.Notification{Title: params.Title}, nil
}

func (m *MockNotificationRepo) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, page, perPage)
	}
	return nil, 0, nil
}

func (m *MockNotificationRepo) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	if m.MarkOpenedFunc != nil {
		return m.MarkOpenedFunc(ctx, notificationID, userID)
	}
	return nil
}

func newNotificationHandler(repo notification.Repository) *NotificationHandler {
	return NewNotificationHandler(notification.NewService(repo, nil))
}

func TestHandlePreferences_GetDefaults(t *testing.T) {
	handler := newNotificationHandler(&MockNotificationRepo{})

	req, _ := http.NewRequest(http.MethodGet, "/api/notifications/preferences/", nil)
	req = authedRequest(req, 1)

	rr := httptest.NewRecorder()
	handler.HandlePreferences(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var resp PreferencesResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.BudgetsEnabled || !resp.DebtsEnabled || !resp.GeneralEnabled || !resp.RemindersEnabled {
		t.Errorf("expected all categories enabled by default, got %+v", resp)
	}
}

func TestHandlePreferences_Update(t *testing.T) {
	var saved notification.UpdatePreferenceParams
	repo := &MockNotificationRepo{
		UpsertPreferencesFunc: func(ctx context.Context, userID int64, params notification.UpdatePreferenceParams) (*notification.NotificationPreference, error) {
			saved = params
			return &notification.NotificationPreference{
				UserID:           userID,
				BudgetsEnabled:   false,
				DebtsEnabled:     true,
				GeneralEnabled:   true,
				RemindersEnabled: true,
			}, nil
		},
	}
	handler := newNotificationHandler(repo)

	disabled := false
	body, _ := json.Marshal(UpdatePreferencesRequest{BudgetsEnabled: &disabled})
	req, _ := http.NewRequest(http.MethodPost, "/api/notifications/preferences/", bytes.NewBuffer(body))
	req = authedRequest(req, 1)

	rr := httptest.NewRecorder()
	handler.HandlePreferences(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if saved.BudgetsEnabled == nil || *saved.BudgetsEnabled {
		t.Error("expected budgets toggle to reach the repository as false")
	}
	if saved.DebtsEnabled != nil {
		t.Error("expected untouched toggles to stay nil")
	}

	var resp PreferencesResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.BudgetsEnabled {
		t.Error("expected budgets disabled in response")
	}
}

func TestHandleRegisterDevice(t *testing.T) {
	tests := []struct {
		name           string
		body           RegisterDeviceRequest
		expectedStatus int
	}{
		{name: "Success", body: RegisterDeviceRequest{Token: "tok-1", DeviceType: "android"}, expectedStatus: http.StatusCreated},
		{name: "Missing Token", body: RegisterDeviceRequest{DeviceType: "android"}, expectedStatus: http.StatusBadRequest},
		{name: "Unknown Device Type", body: RegisterDeviceRequest{Token: "tok-1", DeviceType: "smartwatch"}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newNotificationHandler(&MockNotificationRepo{})

			body, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPost, "/api/notifications/register-device/", bytes.NewBuffer(body))
			req = authedRequest(req, 1)

			rr := httptest.NewRecorder()
			handler.HandleRegisterDevice(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp RegisterDeviceResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Token != tt.body.Token {
					t.Errorf("token: got %q want %q", resp.Token, tt.body.Token)
				}
			}
		})
	}
}

func TestHandleNotifications_List(t *testing.T) {
	opened := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	repo := &MockNotificationRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64, page, perPage int) ([]*notification.Notification, int, error) {
			return []*notification.Notification{
				{ID: "n1", Title: "Budget warning", Category: notification.CategoryBudgets, CreatedAt: opened},
				{ID: "n2", Title: "Payday reminder", Category: notification.CategoryReminders, OpenedAt: &opened, CreatedAt: opened},
			}, 42, nil
		},
	}
	handler := newNotificationHandler(repo)

	req, _ := http.NewRequest(http.MethodGet, "/api/notifications/?page=2&perPage=20", nil)
	req = authedRequest(req, 1)

	rr := httptest.NewRecorder()
	handler.HandleNotifications(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var resp NotificationListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Notifications) != 2 {
		t.Fatalf("notifications: got %d want 2", len(resp.Notifications))
	}
	if resp.Notifications[0].OpenedAt != nil {
		t.Error("expected unopened notification to carry a null openedAt")
	}
	if resp.Notifications[1].OpenedAt == nil {
		t.Error("expected opened notification to carry its openedAt")
	}
	if resp.Page != 2 || resp.Total != 42 || resp.Pages != 3 {
		t.Errorf("pagination: got page=%d total=%d pages=%d", resp.Page, resp.Total, resp.Pages)
	}
}

func TestHandleOpen(t *testing.T) {
	repo := &MockNotificationRepo{
		MarkOpenedFunc: func(ctx context.Context, notificationID string, userID int64) error {
			if notificationID != "n1" {
				return notification.ErrNotificationNotFound
			}
			return nil
		},
	}
	handler := newNotificationHandler(repo)

	send := func(id string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(OpenNotificationRequest{NotificationID: id})
		req, _ := http.NewRequest(http.MethodPost, "/api/notifications/open/", bytes.NewBuffer(body))
		req = authedRequest(req, 1)
		rr := httptest.NewRecorder()
		handler.HandleOpen(rr, req)
		return rr
	}

	if rr := send("n1"); rr.Code != http.StatusNoContent {
		t.Errorf("open existing: got %v want %v", rr.Code, http.StatusNoContent)
	}
	if rr := send("n404"); rr.Code != http.StatusNotFound {
		t.Errorf("open missing: got %v want %v", rr.Code, http.StatusNotFound)
	}
	if rr := send(""); rr.Code != http.StatusBadRequest {
		t.Errorf("open without id: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}
