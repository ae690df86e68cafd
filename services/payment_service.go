package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/repository"
)

// PaymentService drives the external processor flow: create an intent
// server-side, confirm via the processor's webhook / return URL. Processor
// internals are a black box behind PAYMENT_API_URL.
type PaymentService struct {
	DB     *gorm.DB
	Orders *repository.OrderRepository

	APIURL string
	APIKey string
	Client *http.Client
}

func NewPaymentService(db *gorm.DB, orders *repository.OrderRepository, apiURL, apiKey string) *PaymentService {
	return &PaymentService{
		DB:     db,
		Orders: orders,
		APIURL: strings.TrimRight(apiURL, "/"),
		APIKey: apiKey,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

type IntentRes struct {
	IntentRef    string `json:"intentRef"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Amount       int64  `json:"amount"`
}

// CreateIntent registers a pending payment with the processor and stores
// the reference locally. Without a processor configured (dev) a local
// reference is issued so the rest of the flow still works.
func (s *PaymentService) CreateIntent(userID, orderID uint, method string) (*IntentRes, error) {
	order, err := s.Orders.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == entity.PaymentPaid {
		return nil, errors.New("order already paid")
	}

	ref := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	clientSecret := ""

	if s.APIURL != "" {
		body, _ := json.Marshal(map[string]any{
			"amount":   order.Total,
			"currency": "eur",
			"metadata": map[string]any{"orderId": order.ID, "orderNumber": order.OrderNumber},
		})
		req, err := http.NewRequest(http.MethodPost, s.APIURL+"/intents", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.APIKey)

		res, err := s.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode >= 300 {
			return nil, fmt.Errorf("payment processor returned %d", res.StatusCode)
		}

		var out struct {
			ID           string `json:"id"`
			ClientSecret string `json:"clientSecret"`
		}
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
			return nil, err
		}
		if out.ID != "" {
			ref = out.ID
		}
		clientSecret = out.ClientSecret
	}

	p := entity.Payment{
		Amount:    order.Total,
		Method:    method,
		IntentRef: ref,
		Status:    entity.PaymentStatusPending,
		OrderID:   order.ID,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}

	return &IntentRes{IntentRef: ref, ClientSecret: clientSecret, Amount: order.Total}, nil
}

// ConfirmPayment marks the payment and its order paid. Called from the
// processor webhook and from the return-URL confirmation screen.
func (s *PaymentService) ConfirmPayment(intentRef string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var p entity.Payment
		if err := tx.Where("intent_ref = ?", intentRef).First(&p).Error; err != nil {
			return err
		}
		if p.Status == entity.PaymentStatusPaid {
			return nil // webhook retries are fine
		}

		now := time.Now()
		if err := tx.Model(&p).Updates(map[string]any{
			"status":  entity.PaymentStatusPaid,
			"paid_at": now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Order{}).
			Where("id = ?", p.OrderID).
			Updates(map[string]any{
				"payment_status": entity.PaymentPaid,
				"payment_method": p.Method,
			}).Error
	})
}
