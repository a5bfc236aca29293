// internal/backend/payments.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"landdeals-console/internal/domain/installment"
	"landdeals-console/internal/domain/payment"
)

func paymentPath(dealID, paymentID int64) string {
	return fmt.Sprintf("/payments/%d/%d", dealID, paymentID)
}

// ListPayments returns a deal's payments.
func (c *Client) ListPayments(ctx context.Context, token string, dealID int64) ([]payment.Payment, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, token, http.MethodGet, fmt.Sprintf("/payments/%d", dealID), nil, nil, &raw); err != nil {
		return nil, err
	}

	out := []payment.Payment{}
	if err := decodeList(raw, "payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPayment(ctx context.Context, token string, dealID, paymentID int64) (*payment.Payment, error) {
	var out payment.Payment
	if err := c.doJSON(ctx, token, http.MethodGet, paymentPath(dealID, paymentID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePayment records a single payment and returns its new id.
func (c *Client) CreatePayment(ctx context.Context, token string, dealID int64, req payment.CreatePaymentRequest) (int64, error) {
	var out payment.CreatePaymentResponse
	if err := c.doJSON(ctx, token, http.MethodPost, fmt.Sprintf("/payments/%d", dealID), nil, req, &out); err != nil {
		return 0, err
	}
	return out.PaymentID, nil
}

func (c *Client) UpdatePayment(ctx context.Context, token string, dealID, paymentID int64, req payment.UpdatePaymentRequest) error {
	return c.doJSON(ctx, token, http.MethodPut, paymentPath(dealID, paymentID), nil, req, nil)
}

func (c *Client) DeletePayment(ctx context.Context, token string, dealID, paymentID int64) error {
	return c.doJSON(ctx, token, http.MethodDelete, paymentPath(dealID, paymentID), nil, nil, nil)
}

// SplitInstallments creates one payment row per installment in a single call.
func (c *Client) SplitInstallments(ctx context.Context, token string, dealID int64, req installment.SplitRequest) (*installment.SplitResponse, error) {
	var out installment.SplitResponse
	path := fmt.Sprintf("/payments/%d/split-installments", dealID)
	if err := c.doJSON(ctx, token, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Installments returns the sibling rows of an installment payment.
func (c *Client) Installments(ctx context.Context, token string, dealID, paymentID int64) (*payment.InstallmentSet, error) {
	var out payment.InstallmentSet
	if err := c.doJSON(ctx, token, http.MethodGet, paymentPath(dealID, paymentID)+"/installments", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Installments == nil {
		out.Installments = []payment.InstallmentRow{}
	}
	return &out, nil
}

func (c *Client) ListProofs(ctx context.Context, token string, dealID, paymentID int64) ([]payment.Proof, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, token, http.MethodGet, paymentPath(dealID, paymentID)+"/proofs", nil, nil, &raw); err != nil {
		return nil, err
	}

	out := []payment.Proof{}
	if err := decodeList(raw, "proofs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteProof(ctx context.Context, token string, dealID, paymentID, proofID int64) error {
	path := fmt.Sprintf("%s/proofs/%d", paymentPath(dealID, paymentID), proofID)
	return c.doJSON(ctx, token, http.MethodDelete, path, nil, nil, nil)
}

// UploadProof forwards a proof file as multipart form data.
func (c *Client) UploadProof(ctx context.Context, token string, dealID, paymentID int64, fileName string, file io.Reader) (*payment.Proof, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("proof", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy proof: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := c.newRequest(ctx, token, http.MethodPost, paymentPath(dealID, paymentID)+"/proof", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out payment.Proof
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
