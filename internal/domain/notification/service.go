package notification

import (
	"context"
	"errors"
	"log"
)

// Service delivers kakebo's push notifications: budget threshold
// alerts, expense-debt activity and payday reminders. Delivery is
// best-effort; a notification record is kept even when the push fails.
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service. A nil messenger
// disables pushes while keeping the in-app notification feed working.
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice stores a device token for the authenticated user,
// reassigning it if it previously belonged to someone else. First
// registration also seeds the user's preferences so budget alerts and
// payday reminders start enabled.
func (s *Service) RegisterDevice(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	token, err := s.repo.UpsertDeviceToken(ctx, params)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetPreferences(ctx, params.UserID); err != nil {
		if _, err := s.repo.UpsertPreferences(ctx, params.UserID, UpdatePreferenceParams{}); err != nil {
			log.Printf("Warning: failed to seed notification preferences for user %d: %v", params.UserID, err)
		}
	}

	return token, nil
}

// GetPreferences returns a user's notification preferences. Users who
// never touched them get the all-enabled defaults.
func (s *Service) GetPreferences(ctx context.Context, userID int64) (*NotificationPreference, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}

	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return &NotificationPreference{
			UserID:           userID,
			BudgetsEnabled:   true,
			DebtsEnabled:     true,
			GeneralEnabled:   true,
			RemindersEnabled: true,
		}, nil
	}

	return prefs, nil
}

// UpdatePreferences updates notification preferences for a user
func (s *Service) UpdatePreferences(ctx context.Context, userID int64, params UpdatePreferenceParams) (*NotificationPreference, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}

	return s.repo.UpsertPreferences(ctx, userID, params)
}

// ListNotifications returns one page of a user's notification feed.
func (s *Service) ListNotifications(ctx context.Context, userID int64, page, perPage int) ([]*Notification, int, error) {
	if userID <= 0 {
		return nil, 0, errors.New("valid user ID is required")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	return s.repo.ListByUserID(ctx, userID, page, perPage)
}

// MarkNotificationOpened marks a notification as opened by the authenticated user
func (s *Service) MarkNotificationOpened(ctx context.Context, notificationID string, userID int64) error {
	if notificationID == "" {
		return errors.New("notification ID is required")
	}
	if userID <= 0 {
		return errors.New("valid user ID is required")
	}

	return s.repo.MarkOpened(ctx, notificationID, userID)
}

// withRoute ensures the payload carries a route for the client to open
// when the notification is tapped. The category doubles as the default
// route: budget alerts land on the budget screen, debt reminders on the
// debts screen.
func withRoute(data map[string]string, category string) map[string]string {
	if data == nil {
		data = make(map[string]string)
	}
	if _, ok := data["route"]; !ok {
		data["route"] = category
	}
	return data
}

// SendToUser pushes a notification to every active device of a user and
// records it in their feed. Users who disabled the category are skipped
// silently. Push failures are logged, never returned: the threshold and
// reminder callers must not fail their own operation over a push.
func (s *Service) SendToUser(ctx context.Context, userID int64, title, body, category string, data map[string]string) error {
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return err
	}
	if !prefs.IsCategoryEnabled(category) {
		log.Printf("Notification skipped for user %d: category %q disabled", userID, category)
		return nil
	}

	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		log.Printf("No active device tokens for user %d", userID)
		return nil
	}

	data = withRoute(data, category)

	if s.messenger != nil {
		tokenStrings := make([]string, len(tokens))
		for i, t := range tokens {
			tokenStrings[i] = t.Token
		}
		if err := s.messenger.SendMulticast(ctx, tokenStrings, title, body, data); err != nil {
			log.Printf("Error sending notification to user %d: %v", userID, err)
		}
	}

	if _, err := s.repo.CreateNotification(ctx, CreateNotificationParams{
		UserID:   userID,
		Title:    title,
		Message:  body,
		Category: category,
		Data:     data,
	}); err != nil {
		log.Printf("Error storing notification for user %d: %v", userID, err)
	}

	return nil
}

// SendToToken pushes a notification to a single device token, bypassing
// preferences. Used for registration test pushes.
func (s *Service) SendToToken(ctx context.Context, token, title, body, category string, data map[string]string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}

	if s.messenger == nil {
		return nil
	}

	return s.messenger.Send(ctx, token, title, body, withRoute(data, category))
}

// SendToAll broadcasts to every active device token. Intended for
// staff announcements; the handler layer enforces who may call it.
func (s *Service) SendToAll(ctx context.Context, title, body, category string, data map[string]string) error {
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}

	allTokens, err := s.repo.GetAllActiveTokens(ctx)
	if err != nil {
		return err
	}
	if len(allTokens) == 0 {
		log.Println("SendToAll: no active device tokens found")
		return nil
	}

	if s.messenger == nil {
		return nil
	}

	tokenStrings := make([]string, len(allTokens))
	for i, t := range allTokens {
		tokenStrings[i] = t.Token
	}

	return s.messenger.SendMulticast(ctx, tokenStrings, title, body, withRoute(data, category))
}
