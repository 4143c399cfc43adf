package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSendEmail(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	svc := NewDevEmailService("localhost", "1025", "ventas@tienda.cl").(*smtpEmailService)
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := svc.SendEmail(context.Background(), EmailRequest{To: []string{"ana@duoc.cl"}, Subject: "Hola", Body: "Gracias"})

	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", gotAddr)
	assert.Equal(t, "ventas@tienda.cl", gotFrom)
	assert.Equal(t, []string{"ana@duoc.cl"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hola\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\nGracias")
}

func TestSMTPSendEmail_Failure(t *testing.T) {
	svc := NewDevEmailService("localhost", "1025", "ventas@tienda.cl").(*smtpEmailService)
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := svc.SendEmail(context.Background(), EmailRequest{To: []string{"ana@duoc.cl"}})

	assert.Error(t, err)
}

func TestSMTPSendEmail_NoRecipients(t *testing.T) {
	err := NewDevEmailService("localhost", "1025", "x@y.cl").SendEmail(context.Background(), EmailRequest{})

	assert.Error(t, err)
}
