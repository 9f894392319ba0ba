package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/sms"
	"agency-backend/internal/store"
)

type fixture struct {
	store      *store.Store
	provider   *sms.MockProvider
	quotations *QuotationService
	vouchers   *VoucherService
	contracts  *ContractService
	users      *UserService
	settings   *SettingsService
	smsLogs    *SMSLogService
}

func newLocalFixture(t *testing.T, smsEnabled bool) *fixture {
	t.Helper()
	data := models.Empty()
	data.Settings.Twilio.IsEnabled = smsEnabled
	st := store.New(data, nil)
	provider := sms.NewMockProvider()
	notifier := NewNotifier(st, nil, provider)
	return &fixture{
		store:      st,
		provider:   provider,
		quotations: NewQuotationService(st, nil, notifier),
		vouchers:   NewVoucherService(st, nil, notifier),
		contracts:  NewContractService(st, nil),
		users:      NewUserService(st, nil),
		settings:   NewSettingsService(st, nil),
		smsLogs:    NewSMSLogService(st, nil),
	}
}

func TestCreateQuotationRecomputesTotal(t *testing.T) {
	f := newLocalFixture(t, false)

	q, err := f.quotations.Create(context.Background(), models.CreateQuotationRequest{
		ClientName: "Client A",
		Items: []models.ServiceItem{
			{Description: "design", Price: 300, Quantity: 3},
			{Description: "hosting", Price: 200, Quantity: 1},
		},
	})
	require.NoError(t, err)
	// quantity is display-only; the total is the sum of prices
	assert.Equal(t, 500.0, q.Total)
	assert.Equal(t, models.QuotationPending, q.Status)
	assert.Equal(t, models.IQD, q.Currency)
	assert.NotEmpty(t, q.ID)
	assert.NotEmpty(t, q.Items[0].ID)
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	f := newLocalFixture(t, false)

	_, err := f.quotations.Create(context.Background(), models.CreateQuotationRequest{
		ClientName: "first", Items: []models.ServiceItem{{Price: 1}},
	})
	require.NoError(t, err)
	second, err := f.quotations.Create(context.Background(), models.CreateQuotationRequest{
		ClientName: "second", Items: []models.ServiceItem{{Price: 2}},
	})
	require.NoError(t, err)

	list := f.quotations.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "first", list[1].ClientName)
}

func TestSetStatusChangesOnlyStatus(t *testing.T) {
	f := newLocalFixture(t, false)

	q, err := f.quotations.Create(context.Background(), models.CreateQuotationRequest{
		ClientName:  "Client A",
		ClientPhone: "07701234567",
		Items:       []models.ServiceItem{{Description: "seo", Price: 750}},
		Note:        "rush job",
	})
	require.NoError(t, err)

	updated, err := f.quotations.SetStatus(context.Background(), q.ID, models.QuotationAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.QuotationAccepted, updated.Status)
	assert.Equal(t, q.Total, updated.Total)
	assert.Equal(t, q.Note, updated.Note)
	assert.Equal(t, q.Items, updated.Items)

	// transitions are not terminal
	updated, err = f.quotations.SetStatus(context.Background(), q.ID, models.QuotationRejected)
	require.NoError(t, err)
	assert.Equal(t, models.QuotationRejected, updated.Status)
}

func TestSetStatusUnknownQuotation(t *testing.T) {
	f := newLocalFixture(t, false)
	_, err := f.quotations.SetStatus(context.Background(), "missing", models.QuotationAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNonexistentIsNoOp(t *testing.T) {
	f := newLocalFixture(t, false)
	_, err := f.quotations.Create(context.Background(), models.CreateQuotationRequest{
		ClientName: "keep", Items: []models.ServiceItem{{Price: 10}},
	})
	require.NoError(t, err)

	require.NoError(t, f.quotations.Delete(context.Background(), "missing"))
	assert.Len(t, f.quotations.List(), 1)
	require.NoError(t, f.vouchers.Delete(context.Background(), "missing"))
	require.NoError(t, f.contracts.Delete(context.Background(), "missing"))
}

func TestFailedRemoteCreateLeavesStoreUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	st := store.New(models.Empty(), nil)
	rc := remote.NewClient(srv.URL, "")
	notifier := NewNotifier(st, rc, sms.NewMockProvider())
	quotations := NewQuotationService(st, rc, notifier)
	vouchers := NewVoucherService(st, rc, notifier)

	_, err := quotations.Create(context.Background(), models.CreateQuotationRequest{
		ClientName: "Client A", Items: []models.ServiceItem{{Price: 100}},
	})
	require.Error(t, err)
	assert.Empty(t, quotations.List())

	_, err = vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type: models.VoucherReceipt, Amount: 100, PartyName: "p",
	})
	require.Error(t, err)
	assert.Empty(t, st.Snapshot().Vouchers)
}

func TestReceiptVoucherSendsNotification(t *testing.T) {
	f := newLocalFixture(t, true)

	_, err := f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type:       models.VoucherReceipt,
		Amount:     250000,
		Currency:   models.IQD,
		PartyName:  "Client B",
		PartyPhone: "07701234567",
	})
	require.NoError(t, err)

	msgs := f.provider.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "07701234567", msgs[0].To)
	assert.Contains(t, msgs[0].Body, "250000")

	logs := f.smsLogs.List()
	require.Len(t, logs, 1)
	assert.Equal(t, models.SMSStatusSuccess, logs[0].Status)
}

func TestSalaryPaymentSendsNotification(t *testing.T) {
	f := newLocalFixture(t, true)

	_, err := f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type:       models.VoucherPayment,
		Amount:     800,
		Currency:   models.USD,
		PartyName:  "Employee C",
		PartyPhone: "07709876543",
		Category:   models.CategorySalary,
	})
	require.NoError(t, err)
	assert.Len(t, f.provider.Messages(), 1)
}

func TestGeneralPaymentSendsNothing(t *testing.T) {
	f := newLocalFixture(t, true)

	_, err := f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type:       models.VoucherPayment,
		Amount:     100,
		PartyName:  "Vendor",
		PartyPhone: "07701111111",
		Category:   models.CategoryGeneral,
	})
	require.NoError(t, err)
	assert.Empty(t, f.provider.Messages())
	assert.Empty(t, f.smsLogs.List())
}

func TestNotificationSkippedWhenDisabled(t *testing.T) {
	f := newLocalFixture(t, false)

	_, err := f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type:       models.VoucherReceipt,
		Amount:     100,
		PartyName:  "Client",
		PartyPhone: "07701234567",
	})
	require.NoError(t, err)
	assert.Empty(t, f.provider.Messages())
	assert.Empty(t, f.smsLogs.List())
}

func TestFailedSendIsLoggedAndVoucherKept(t *testing.T) {
	f := newLocalFixture(t, true)
	f.provider.Fail = assert.AnError

	v, err := f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type:       models.VoucherReceipt,
		Amount:     100,
		PartyName:  "Client",
		PartyPhone: "07701234567",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)

	logs := f.smsLogs.List()
	require.Len(t, logs, 1)
	assert.Equal(t, models.SMSStatusFailed, logs[0].Status)
	assert.NotEmpty(t, logs[0].Error)
}

func TestSettlementFoldsItemsIntoOneVoucher(t *testing.T) {
	f := newLocalFixture(t, false)

	v, err := f.vouchers.Settle(context.Background(), models.SettlementRequest{
		PartyName: "Freelancer D",
		Currency:  models.USD,
		Month:     "2026-08",
		Items: []models.SettlementItem{
			{Description: "logo", Price: 150},
			{Description: "reel", Price: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.VoucherPayment, v.Type)
	assert.Equal(t, models.CategoryFreelance, v.Category)
	assert.Equal(t, 250.0, v.Amount)
	assert.Contains(t, v.Description, "2026-08")
	assert.Contains(t, v.Description, "logo")

	assert.Len(t, f.vouchers.List(models.CategoryFreelance), 1)
	assert.Empty(t, f.vouchers.List(models.CategorySalary))
}

func TestVoucherValidation(t *testing.T) {
	f := newLocalFixture(t, false)

	_, err := f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type: "TRANSFER", Amount: 10, PartyName: "x",
	})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type: models.VoucherReceipt, Amount: 0, PartyName: "x",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSettingsRejectsNonPositiveRate(t *testing.T) {
	f := newLocalFixture(t, false)

	next := f.settings.Get()
	next.ExchangeRate = 0
	_, err := f.settings.Update(context.Background(), next)
	assert.ErrorIs(t, err, ErrInvalid)

	next.ExchangeRate = 1450
	updated, err := f.settings.Update(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, 1450.0, updated.ExchangeRate)
	assert.Equal(t, 1450.0, f.settings.Get().ExchangeRate)
}

func TestUserCreateAndDuplicate(t *testing.T) {
	f := newLocalFixture(t, false)

	u, err := f.users.Create(context.Background(), models.CreateUserRequest{
		Name: "Aram", Username: "aram", Password: "pw", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Empty(t, u.Password)

	// stored credential is hashed, never plaintext
	stored := f.store.Snapshot().Users[0]
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "pw", stored.Password)

	_, err = f.users.Create(context.Background(), models.CreateUserRequest{
		Name: "Other", Username: "aram",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCannotDeleteLastAdmin(t *testing.T) {
	f := newLocalFixture(t, false)

	admin, err := f.users.Create(context.Background(), models.CreateUserRequest{
		Name: "Aram", Username: "aram", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	err = f.users.Delete(context.Background(), admin.ID)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = f.users.Create(context.Background(), models.CreateUserRequest{
		Name: "Sara", Username: "sara", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(context.Background(), admin.ID))
	assert.Len(t, f.users.List(), 1)
}

func TestSMSLogClear(t *testing.T) {
	f := newLocalFixture(t, true)

	_, err := f.vouchers.Create(context.Background(), models.CreateVoucherRequest{
		Type: models.VoucherReceipt, Amount: 1, PartyName: "p", PartyPhone: "07701234567",
	})
	require.NoError(t, err)
	require.Len(t, f.smsLogs.List(), 1)

	require.NoError(t, f.smsLogs.Clear(context.Background()))
	assert.Empty(t, f.smsLogs.List())
}
