package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/store"
)

func testNotification(t *testing.T) *domain.Notification {
	t.Helper()

	sendAt := time.Date(2026, 9, 13, 9, 0, 0, 0, time.UTC)
	n, err := domain.NewNotification(uuid.New(), domain.NotificationTypeSMS,
		"Your appointment is tomorrow at 10:00.", sendAt, domain.NotificationPriorityHigh)
	require.NoError(t, err)
	n.ChannelInfo = json.RawMessage(`{"phone_number":"+15550001111"}`)
	return n
}

func TestCreateNotification(t *testing.T) {
	t.Parallel()

	mockStore := &mockNotificationStore{}
	svc := NewNotificationService(mockStore, nil, nil)

	appointmentID := uuid.New()
	subject := "Appointment reminder"
	sendAt := time.Date(2026, 9, 13, 9, 0, 0, 0, time.UTC)

	created, err := svc.CreateNotification(context.Background(), CreateNotificationParams{
		UserID:          uuid.New(),
		AppointmentID:   &appointmentID,
		Type:            domain.NotificationTypeEmail,
		Priority:        domain.NotificationPriorityMedium,
		Subject:         &subject,
		Message:         "See you tomorrow at 10:00.",
		ScheduledSendAt: sendAt,
		ChannelInfo:     json.RawMessage(`{"address":"jane@gmail.com"}`),
	})
	require.NoError(t, err)

	assert.True(t, mockStore.createCalled)
	assert.Equal(t, domain.NotificationStatusPending, created.Status)
	assert.Equal(t, &appointmentID, created.AppointmentID)
	assert.Equal(t, &subject, created.Subject)
	assert.Nil(t, created.ActualSentAt)
}

func TestCreateNotificationRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	sendAt := time.Date(2026, 9, 13, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  CreateNotificationParams
		wantErr error
	}{
		{
			name: "unknown type",
			params: CreateNotificationParams{
				UserID:          uuid.New(),
				Type:            "fax",
				Priority:        domain.NotificationPriorityLow,
				Message:         "Hello.",
				ScheduledSendAt: sendAt,
			},
			wantErr: domain.ErrInvalidNotificationType,
		},
		{
			name: "empty message",
			params: CreateNotificationParams{
				UserID:          uuid.New(),
				Type:            domain.NotificationTypeEmail,
				Priority:        domain.NotificationPriorityLow,
				Message:         "",
				ScheduledSendAt: sendAt,
			},
			wantErr: domain.ErrEmptyMessage,
		},
		{
			name: "missing send time",
			params: CreateNotificationParams{
				UserID:   uuid.New(),
				Type:     domain.NotificationTypeEmail,
				Priority: domain.NotificationPriorityLow,
				Message:  "Hello.",
			},
			wantErr: domain.ErrMissingScheduledSendAt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := &mockNotificationStore{}
			svc := NewNotificationService(mockStore, nil, nil)

			_, err := svc.CreateNotification(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, mockStore.createCalled)
		})
	}
}

func TestGetNotificationDelegatesToStore(t *testing.T) {
	t.Parallel()

	n := testNotification(t)
	mockStore := &mockNotificationStore{getByIDNotification: n}
	svc := NewNotificationService(mockStore, nil, nil)

	got, err := svc.GetNotification(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)
}

func TestUpdateNotificationRejectsIDChange(t *testing.T) {
	t.Parallel()

	mockStore := &mockNotificationStore{}
	svc := NewNotificationService(mockStore, nil, nil)

	otherID := uuid.New()
	_, err := svc.UpdateNotification(context.Background(), uuid.New(), &domain.NotificationUpdate{ID: &otherID})

	assert.ErrorIs(t, err, domain.ErrIDImmutable)
	assert.False(t, mockStore.updateCalled)
}

func TestDeleteNotificationPropagatesStoreError(t *testing.T) {
	t.Parallel()

	mockStore := &mockNotificationStore{deleteError: store.ErrNotificationNotFound}
	svc := NewNotificationService(mockStore, nil, nil)

	err := svc.DeleteNotification(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotificationNotFound)
}
