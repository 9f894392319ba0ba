package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"agency-backend/internal/models"
)

// TokenPair is the upstream access/refresh token response.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Token exchanges credentials for a token pair.
func (c *Client) Token(ctx context.Context, username, password string) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/token/", models.LoginRequest{
		Username: username,
		Password: password,
	}, &pair)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return TokenPair{}, fmt.Errorf("%w: status %d", ErrAuthRejected, apiErr.Status)
		}
		return TokenPair{}, err
	}
	return pair, nil
}

// RefreshToken exchanges the refresh token for a new access token. No retry,
// no cascade; the caller decides whether to force a re-login on failure.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var out struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh/", map[string]string{"refresh": refresh}, &out)
	if err != nil {
		return "", err
	}
	return out.Access, nil
}

// Me fetches the profile of the user the current access token belongs to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var w userWire
	if err := c.do(ctx, http.MethodGet, "/api/users/me/", nil, &w); err != nil {
		return nil, err
	}
	user := userFromWire(w)
	return &user, nil
}

// Logout notifies the upstream that the session ended. Best-effort: the
// caller has already cleared local credentials when this runs.
func (c *Client) Logout(ctx context.Context) {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout/", nil, nil); err != nil {
		c.log.Debug().Err(err).Msg("logout notify failed")
	}
}

// ----- Quotations -----

func (c *Client) ListQuotations(ctx context.Context) ([]models.Quotation, error) {
	wires, err := getList[quotationWire](ctx, c, "/api/quotations/")
	if err != nil {
		return nil, err
	}
	out := make([]models.Quotation, 0, len(wires))
	for _, w := range wires {
		out = append(out, quotationFromWire(w))
	}
	return out, nil
}

func (c *Client) CreateQuotation(ctx context.Context, q models.Quotation) (models.Quotation, error) {
	var w quotationWire
	if err := c.do(ctx, http.MethodPost, "/api/quotations/", quotationToWire(q), &w); err != nil {
		return models.Quotation{}, err
	}
	return quotationFromWire(w), nil
}

func (c *Client) SetQuotationStatus(ctx context.Context, id string, status models.QuotationStatus) (models.Quotation, error) {
	var w quotationWire
	path := fmt.Sprintf("/api/quotations/%s/set_status/", id)
	if err := c.do(ctx, http.MethodPost, path, models.SetStatusRequest{Status: status}, &w); err != nil {
		return models.Quotation{}, err
	}
	return quotationFromWire(w), nil
}

func (c *Client) DeleteQuotation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/quotations/%s/", id), nil, nil)
}

// ----- Vouchers -----

func (c *Client) ListVouchers(ctx context.Context) ([]models.Voucher, error) {
	wires, err := getList[voucherWire](ctx, c, "/api/vouchers/")
	if err != nil {
		return nil, err
	}
	out := make([]models.Voucher, 0, len(wires))
	for _, w := range wires {
		out = append(out, voucherFromWire(w))
	}
	return out, nil
}

func (c *Client) CreateVoucher(ctx context.Context, v models.Voucher) (models.Voucher, error) {
	var w voucherWire
	if err := c.do(ctx, http.MethodPost, "/api/vouchers/", voucherToWire(v), &w); err != nil {
		return models.Voucher{}, err
	}
	return voucherFromWire(w), nil
}

func (c *Client) UpdateVoucher(ctx context.Context, v models.Voucher) (models.Voucher, error) {
	var w voucherWire
	path := fmt.Sprintf("/api/vouchers/%s/", v.ID)
	if err := c.do(ctx, http.MethodPut, path, voucherToWire(v), &w); err != nil {
		return models.Voucher{}, err
	}
	return voucherFromWire(w), nil
}

func (c *Client) DeleteVoucher(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/vouchers/%s/", id), nil, nil)
}

// ----- Contracts -----

func (c *Client) ListContracts(ctx context.Context) ([]models.Contract, error) {
	wires, err := getList[contractWire](ctx, c, "/api/contracts/")
	if err != nil {
		return nil, err
	}
	out := make([]models.Contract, 0, len(wires))
	for _, w := range wires {
		out = append(out, contractFromWire(w))
	}
	return out, nil
}

func (c *Client) CreateContract(ctx context.Context, contract models.Contract) (models.Contract, error) {
	var w contractWire
	if err := c.do(ctx, http.MethodPost, "/api/contracts/", contractToWire(contract), &w); err != nil {
		return models.Contract{}, err
	}
	return contractFromWire(w), nil
}

func (c *Client) DeleteContract(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/contracts/%s/", id), nil, nil)
}

// ----- Users -----

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	wires, err := getList[userWire](ctx, c, "/api/users/")
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(wires))
	for _, w := range wires {
		out = append(out, userFromWire(w))
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var w userWire
	payload := userWire{Name: req.Name, Username: req.Username, Password: req.Password, Role: req.Role}
	if err := c.do(ctx, http.MethodPost, "/api/users/", payload, &w); err != nil {
		return models.User{}, err
	}
	return userFromWire(w), nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%s/", id), nil, nil)
}

// ----- Settings (singleton: list, then operate on item 0) -----

func (c *Client) GetSettings(ctx context.Context) (*models.AgencySettings, error) {
	wires, err := getList[settingsWire](ctx, c, "/api/settings/")
	if err != nil {
		return nil, err
	}
	if len(wires) == 0 {
		return nil, nil
	}
	s := settingsFromWire(wires[0])
	return &s, nil
}

// UpdateSettings PUTs against the existing singleton and falls back to POST
// when none exists server-side yet.
func (c *Client) UpdateSettings(ctx context.Context, s models.AgencySettings) (models.AgencySettings, error) {
	wires, err := getList[settingsWire](ctx, c, "/api/settings/")
	if err != nil {
		return models.AgencySettings{}, err
	}

	var out settingsWire
	if len(wires) == 0 {
		if err := c.do(ctx, http.MethodPost, "/api/settings/", settingsToWire(s, 0), &out); err != nil {
			return models.AgencySettings{}, err
		}
	} else {
		id := wires[0].ID
		path := fmt.Sprintf("/api/settings/%d/", id)
		if err := c.do(ctx, http.MethodPut, path, settingsToWire(s, id), &out); err != nil {
			return models.AgencySettings{}, err
		}
	}
	return settingsFromWire(out), nil
}

// ----- SMS logs -----

func (c *Client) ListSMSLogs(ctx context.Context) ([]models.SMSLog, error) {
	wires, err := getList[smsLogWire](ctx, c, "/api/sms-logs/")
	if err != nil {
		return nil, err
	}
	out := make([]models.SMSLog, 0, len(wires))
	for _, w := range wires {
		out = append(out, smsLogFromWire(w))
	}
	return out, nil
}

func (c *Client) CreateSMSLog(ctx context.Context, entry models.SMSLog) (models.SMSLog, error) {
	var w smsLogWire
	payload := smsLogWire{To: entry.To, Body: entry.Body, Status: entry.Status, Error: entry.Error}
	if err := c.do(ctx, http.MethodPost, "/api/sms-logs/", payload, &w); err != nil {
		return models.SMSLog{}, err
	}
	return smsLogFromWire(w), nil
}

func (c *Client) DeleteSMSLog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/sms-logs/%s/", id), nil, nil)
}

// SendSMS asks the upstream to deliver a message on the agency's behalf.
func (c *Client) SendSMS(ctx context.Context, to, body string) (bool, string) {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/send-sms/", map[string]string{"to": to, "body": body}, &out); err != nil {
		return false, err.Error()
	}
	return out.Success, out.Error
}

// ----- Full aggregate -----

// FetchAppData assembles the aggregate from the upstream. Failed collection
// reads degrade to empty slices and missing settings fall back to the
// deployment defaults, so the UI is never blocked by a flaky upstream.
func (c *Client) FetchAppData(ctx context.Context) models.AppData {
	data := models.Empty()

	if quotations, err := c.ListQuotations(ctx); err == nil {
		data.Quotations = quotations
	} else {
		c.log.Warn().Err(err).Msg("quotations fetch failed, using empty collection")
	}
	if vouchers, err := c.ListVouchers(ctx); err == nil {
		data.Vouchers = vouchers
	} else {
		c.log.Warn().Err(err).Msg("vouchers fetch failed, using empty collection")
	}
	if contracts, err := c.ListContracts(ctx); err == nil {
		data.Contracts = contracts
	} else {
		c.log.Warn().Err(err).Msg("contracts fetch failed, using empty collection")
	}
	if users, err := c.ListUsers(ctx); err == nil {
		data.Users = users
	} else {
		c.log.Warn().Err(err).Msg("users fetch failed, using empty collection")
	}
	if logs, err := c.ListSMSLogs(ctx); err == nil {
		data.SMSLogs = logs
	} else {
		c.log.Warn().Err(err).Msg("sms logs fetch failed, using empty collection")
	}
	if settings, err := c.GetSettings(ctx); err == nil && settings != nil {
		data.Settings = *settings
	} else if err != nil {
		c.log.Warn().Err(err).Msg("settings fetch failed, using defaults")
	}

	data.Normalize()
	return data
}
