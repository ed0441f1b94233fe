package eft

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"hairven/internal/services/notification"
	"hairven/internal/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, n notification.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func newTestService(notifier Notifier) *Service {
	return NewService(Options{
		BankDetails: &BankDetails{
			AccountName:   "Hairven Beauty (Pty) Ltd",
			AccountNumber: "1234567890",
			BankName:      "First National Bank",
			BranchCode:    "250655",
		},
	}, notifier, zap.NewNop())
}

func initiatedData(t *testing.T, s *Service) map[string]interface{} {
	t.Helper()
	out, err := s.InitiatePayment(context.Background(), payment.InitiateInput{
		Amount:       1000,
		CurrencyCode: "zar",
		Context:      payment.SessionContext{CustomerEmail: "a@b.com"},
	})
	require.NoError(t, err)
	return out.Data
}

var referencePattern = regexp.MustCompile(`^[A-Z0-9]{4}$`)

func TestInitiatePayment(t *testing.T) {
	s := newTestService(nil)

	out, err := s.InitiatePayment(context.Background(), payment.InitiateInput{
		Amount:       1000,
		CurrencyCode: "zar",
		Context:      payment.SessionContext{CustomerEmail: "a@b.com"},
	})
	require.NoError(t, err)

	reference, _ := out.Data["reference"].(string)
	assert.Regexp(t, referencePattern, reference)
	assert.Equal(t, reference, out.ID)
	assert.Equal(t, int64(1000), out.Data["amount"])
	assert.Equal(t, "zar", out.Data["currency_code"])
	assert.Equal(t, "a@b.com", out.Data["customer_email"])

	// Status stays implicit until the first lifecycle operation stamps one.
	_, hasStatus := out.Data["status"]
	assert.False(t, hasStatus)
}

func TestGenerateReference(t *testing.T) {
	t.Run("no order number", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			assert.Regexp(t, referencePattern, generateReference(""))
		}
	})

	t.Run("order number prefix", func(t *testing.T) {
		got := generateReference("1042")
		assert.Regexp(t, regexp.MustCompile(`^1042-[A-Z0-9]{4}$`), got)
	})
}

func TestAuthorizePayment(t *testing.T) {
	t.Run("sends instructions and returns pending", func(t *testing.T) {
		notifier := new(mockNotifier)
		notifier.On("Send", mock.MatchedBy(func(n notification.Notification) bool {
			return n.To == "a@b.com" &&
				n.Channel == notification.ChannelEmail &&
				n.Template == notification.TemplateEftPaymentInstructions
		})).Return(nil)

		s := newTestService(notifier)
		data := initiatedData(t, s)

		out, err := s.AuthorizePayment(context.Background(), payment.AuthorizeInput{Data: data})
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPending, out.Status)
		assert.Equal(t, payment.StatusPending, out.Data["status"])
		assert.Equal(t, data["reference"], out.Data["reference"])
		notifier.AssertExpectations(t)

		sent := notifier.Calls[0].Arguments.Get(0).(notification.Notification)
		assert.Equal(t, data["reference"], sent.Data["reference"])
		bank, ok := sent.Data["bank_details"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "First National Bank", bank["bank_name"])
	})

	t.Run("notification failure is swallowed", func(t *testing.T) {
		notifier := new(mockNotifier)
		notifier.On("Send", mock.Anything).Return(errors.New("smtp down"))

		s := newTestService(notifier)
		out, err := s.AuthorizePayment(context.Background(), payment.AuthorizeInput{Data: initiatedData(t, s)})

		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, out.Status)
	})

	t.Run("missing notifier falls back to logging", func(t *testing.T) {
		s := newTestService(nil)
		out, err := s.AuthorizePayment(context.Background(), payment.AuthorizeInput{Data: initiatedData(t, s)})

		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, out.Status)
	})

	t.Run("missing customer email skips dispatch", func(t *testing.T) {
		notifier := new(mockNotifier)

		s := newTestService(notifier)
		out, err := s.AuthorizePayment(context.Background(), payment.AuthorizeInput{
			Data: map[string]interface{}{"reference": "AB12", "amount": int64(1000), "currency_code": "zar"},
		})

		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, out.Status)
		notifier.AssertNotCalled(t, "Send", mock.Anything)
	})
}

func TestLifecycleStatusStamps(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		operation  func(data map[string]interface{}) (map[string]interface{}, error)
		wantStatus string
	}{
		{
			name: "capture",
			operation: func(data map[string]interface{}) (map[string]interface{}, error) {
				out, err := s.CapturePayment(ctx, payment.OperationInput{Data: data})
				return out.Data, err
			},
			wantStatus: payment.StatusCaptured,
		},
		{
			name: "cancel",
			operation: func(data map[string]interface{}) (map[string]interface{}, error) {
				out, err := s.CancelPayment(ctx, payment.OperationInput{Data: data})
				return out.Data, err
			},
			wantStatus: payment.StatusCancelled,
		},
		{
			name: "refund",
			operation: func(data map[string]interface{}) (map[string]interface{}, error) {
				out, err := s.RefundPayment(ctx, payment.RefundInput{Data: data})
				return out.Data, err
			},
			wantStatus: payment.StatusRefunded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := initiatedData(t, s)

			got, err := tt.operation(data)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])
			// The reference never changes across lifecycle transitions.
			assert.Equal(t, data["reference"], got["reference"])

			// Operations return a fresh payload; the input is untouched.
			_, mutated := data["status"]
			assert.False(t, mutated)
		})
	}
}

func TestDeleteAndRetrieveAreIdentity(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()
	data := initiatedData(t, s)

	deleted, err := s.DeletePayment(ctx, payment.OperationInput{Data: data})
	require.NoError(t, err)
	assert.Equal(t, data["reference"], deleted.Data["reference"])
	_, hasStatus := deleted.Data["status"]
	assert.False(t, hasStatus)

	retrieved, err := s.RetrievePayment(ctx, payment.OperationInput{Data: data})
	require.NoError(t, err)
	assert.Equal(t, data["reference"], retrieved.Data["reference"])
}

func TestUpdatePayment(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	t.Run("overrides amount and currency", func(t *testing.T) {
		data := initiatedData(t, s)
		amount := int64(2500)

		out, err := s.UpdatePayment(ctx, payment.UpdateInput{
			Data:         data,
			Amount:       &amount,
			CurrencyCode: "usd",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2500), out.Data["amount"])
		assert.Equal(t, "usd", out.Data["currency_code"])
		assert.Equal(t, data["reference"], out.Data["reference"])
	})

	t.Run("keeps fields when not supplied", func(t *testing.T) {
		data := initiatedData(t, s)

		out, err := s.UpdatePayment(ctx, payment.UpdateInput{Data: data})
		require.NoError(t, err)

		assert.Equal(t, int64(1000), out.Data["amount"])
		assert.Equal(t, "zar", out.Data["currency_code"])
	})
}

func TestGetPaymentStatusAlwaysPending(t *testing.T) {
	s := newTestService(nil)

	for _, data := range []map[string]interface{}{
		nil,
		{"status": payment.StatusCaptured},
	} {
		out, err := s.GetPaymentStatus(context.Background(), payment.OperationInput{Data: data})
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, out.Status)
	}
}

func TestGetWebhookActionAndData(t *testing.T) {
	s := newTestService(nil)

	out, err := s.GetWebhookActionAndData(context.Background(), map[string]interface{}{"anything": true})
	require.NoError(t, err)

	assert.Equal(t, payment.WebhookActionNotSupported, out.Action)
	assert.Equal(t, "", out.Data.SessionID)
	assert.Equal(t, int64(0), out.Data.Amount)
}

// Malformed stored payloads degrade to zero values instead of failing.
func TestPaymentDataFromMap_Tolerance(t *testing.T) {
	got := paymentDataFromMap(map[string]interface{}{
		"reference": 42,
		"amount":    "not-a-number",
	})

	assert.Equal(t, "", got.Reference)
	assert.Equal(t, int64(0), got.Amount)

	// JSON round trips hand back float64 amounts.
	roundTripped := paymentDataFromMap(map[string]interface{}{"amount": float64(1000)})
	assert.Equal(t, int64(1000), roundTripped.Amount)
}
