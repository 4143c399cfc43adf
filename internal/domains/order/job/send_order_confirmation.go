package job

import (
	"context"
	"fmt"

	"storefront-backend/internal/domains/order/model"
	emailInfra "storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type SendOrderConfirmationHandler struct {
	emailService emailInfra.EmailService
}

func NewSendOrderConfirmationHandler(emailService emailInfra.EmailService) *SendOrderConfirmationHandler {
	return &SendOrderConfirmationHandler{
		emailService: emailService,
	}
}

func (h *SendOrderConfirmationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.OrderConfirmationPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	if payload.Email == "" {
		logger.Warn("Order confirmation without recipient, skipping", map[string]interface{}{
			"order_id": payload.OrderID,
		})
		return nil
	}

	logger.Info("Processing send order confirmation task", map[string]interface{}{
		"order_id": payload.OrderID,
		"email":    payload.Email,
	})

	emailReq := emailInfra.EmailRequest{
		To:      []string{payload.Email},
		Subject: fmt.Sprintf("Tu pedido #%d fue recibido", payload.OrderID),
		Body:    buildConfirmationBody(payload),
	}

	if err := h.emailService.SendEmail(ctx, emailReq); err != nil {
		logger.Warn("Failed to send order confirmation email", map[string]interface{}{
			"order_id": payload.OrderID,
			"email":    payload.Email,
			"error":    err.Error(),
		})
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("Sent order confirmation email successfully", map[string]interface{}{
		"order_id": payload.OrderID,
		"email":    payload.Email,
	})
	return nil
}

var paymentMethodText = map[string]string{
	string(model.PaymentDebit):  "Tarjeta de débito",
	string(model.PaymentCredit): "Tarjeta de crédito",
}

func buildConfirmationBody(payload model.OrderConfirmationPayload) string {
	method := paymentMethodText[payload.PaymentMethod]
	if method == "" {
		method = payload.PaymentMethod
	}

	name := payload.CustomerName
	if name == "" {
		name = "cliente"
	}

	return fmt.Sprintf(`Hola %s,

¡Gracias por tu compra!

Detalle del pedido:
- Número de pedido: %d
- Fecha: %s
- Productos: %d
- Total: %s
- Medio de pago: %s
- Dirección de envío: %s

Saludos,
El equipo de la tienda`,
		name,
		payload.OrderID,
		payload.Date,
		payload.Units,
		payload.Total,
		method,
		payload.Address,
	)
}
