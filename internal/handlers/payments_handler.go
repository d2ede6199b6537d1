package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noteskart/noteskart/internal/auth"
	"github.com/noteskart/noteskart/internal/aws"
	"github.com/noteskart/noteskart/internal/notes"
	"github.com/noteskart/noteskart/internal/payments"
	"github.com/noteskart/noteskart/internal/paywall"
	"github.com/noteskart/noteskart/internal/receipts"
	"github.com/noteskart/noteskart/internal/validation"
)

// RegisterPaymentRoutes registers the purchase-and-download flow:
// order creation, payment verification, and the gated download.
func RegisterPaymentRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	noteStore := notes.NewStore(cfg.DynamoDBClient, cfg.NotesTable)
	verifier := payments.NewVerifier(cfg.PaymentSecret)
	orderSvc := payments.NewService(cfg.Gateway)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)

	var receiptStore *receipts.Store
	if cfg.SingleUseReceipts {
		receiptStore = receipts.NewStore(cfg.DynamoDBClient, cfg.ReceiptsTable, cfg.TTLWindow)
	}
	gate := paywall.NewGate(noteStore, verifier, receiptStore)

	r.POST("/createOrder/:id", auth.RequireLogin(), func(c *gin.Context) {
		ctx := c.Request.Context()
		noteID := c.Param("id")

		// Reject unknown note ids before talking to the gateway.
		note, err := noteStore.Get(ctx, noteID)
		if err != nil {
			log.Printf("[payments] note lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to create order"})
			return
		}
		if note == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
			return
		}

		order, err := orderSvc.CreateOrder(ctx, noteID)
		if err != nil {
			// Full detail stays server-side; the client sees a generic,
			// retryable failure.
			log.Printf("[payments] create order failed for note=%s: %v", noteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to create order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id": order.OrderID,
			"amount":   order.Amount,
			"currency": order.Currency,
			"receipt":  order.Receipt,
		})
	})

	r.POST("/verifyPayment", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.VerifyPaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		if !verifier.Verify(req.OrderID, req.PaymentID, req.Signature) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}

		if receiptStore != nil {
			err := receiptStore.CreateVerified(ctx, req.OrderID, req.PaymentID)
			if err != nil && !errors.Is(err, receipts.ErrAlreadyExists) {
				log.Printf("[payments] record receipt failed for order=%s: %v", req.OrderID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to record payment"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	r.GET("/downloadNote/:id", auth.RequireLogin(), func(c *gin.Context) {
		ctx := c.Request.Context()
		noteID := c.Param("id")

		conf := &payments.Confirmation{
			OrderID:   c.Query("order_id"),
			PaymentID: c.Query("payment_id"),
			Signature: c.Query("signature"),
		}

		url, err := gate.AuthorizeDownload(ctx, noteID, conf)
		if err != nil {
			switch {
			case errors.Is(err, paywall.ErrNoteNotFound):
				auth.Flash(c, "Note not found")
				c.Redirect(http.StatusFound, "/listnotes")
			case errors.Is(err, paywall.ErrMissingConfirmation),
				errors.Is(err, paywall.ErrPaymentRejected),
				errors.Is(err, paywall.ErrReceiptConsumed):
				auth.Flash(c, "Payment could not be verified")
				c.Redirect(http.StatusFound, "/listnotes/"+noteID)
			default:
				log.Printf("[payments] download authorization failed for note=%s: %v", noteID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Unable to authorize download"})
			}
			return
		}

		// Fulfilment is recorded asynchronously; a publish failure must not
		// block a paid download.
		msg := map[string]string{
			"order_id":   conf.OrderID,
			"payment_id": conf.PaymentID,
			"note_id":    noteID,
		}
		payloadBytes, _ := json.Marshal(msg)
		attrs := map[string]string{
			"order_id":       conf.OrderID,
			"note_id":        noteID,
			"correlation_id": c.GetHeader("X-Request-Id"),
		}
		if err := publisher.SendPurchaseMessage(ctx, string(payloadBytes), attrs); err != nil {
			log.Printf("[payments] purchase event publish failed for order=%s: %v", conf.OrderID, err)
		}

		c.Redirect(http.StatusFound, url)
	})
}
