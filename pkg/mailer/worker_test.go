package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	tpl "github.com/oksasatya/t2-user-service/pkg/mailer/templates"
)

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, to, subject, text, html string) error {
	return m.Called(ctx, to, subject, text, html).Error(0)
}

func jobBytes(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandle_Template(t *testing.T) {
	s := new(mockSender)
	s.On("Send", mock.Anything, "johndoe@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.MatchedBy(func(html string) bool {
		return html != ""
	})).Return(nil).Once()

	body := jobBytes(t, EmailJob{
		To:       "johndoe@example.com",
		Template: tpl.Welcome,
		Data:     map[string]any{"Name": "John Doe", "AppName": "t2"},
	})
	require.NoError(t, Handle(context.Background(), s, body))
	s.AssertExpectations(t)
}

func TestHandle_Raw(t *testing.T) {
	s := new(mockSender)
	s.On("Send", mock.Anything, "a@example.com", "hi", "body", "").Return(nil).Once()

	require.NoError(t, Handle(context.Background(), s, jobBytes(t, EmailJob{To: "a@example.com", Subject: "hi", Text: "body"})))
	s.AssertExpectations(t)
}

func TestHandle_BadJobs(t *testing.T) {
	tests := map[string][]byte{
		"invalid json":     []byte("{"),
		"no recipient":     []byte(`{"subject":"hi","text":"x"}`),
		"no content":       []byte(`{"to":"a@example.com"}`),
		"unknown template": []byte(`{"to":"a@example.com","template":"nope"}`),
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			s := new(mockSender)
			err := Handle(context.Background(), s, body)
			assert.ErrorIs(t, err, ErrBadJob)
			s.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_SendFailureIsRetryable(t *testing.T) {
	s := new(mockSender)
	s.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("mailgun down"))

	err := Handle(context.Background(), s, jobBytes(t, EmailJob{To: "a@example.com", Subject: "hi", HTML: "<p>x</p>"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadJob)
}
