package mail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	m, err := build(Message{
		From:        "shop@example.com",
		To:          []string{"owner@example.com"},
		Subject:     "Daily report 2025-06-15",
		Body:        "See attachment.",
		Attachments: []Attachment{{Name: "report-2025-06-15.pdf", Data: []byte("%PDF-1.3")}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Subject: Daily report 2025-06-15")
	assert.Contains(t, out, "owner@example.com")
	assert.Contains(t, out, "report-2025-06-15.pdf")
}

func TestBuild_Rejects(t *testing.T) {
	_, err := build(Message{From: "shop@example.com"})
	assert.Error(t, err)

	_, err = build(Message{From: "not an address", To: []string{"owner@example.com"}})
	assert.Error(t, err)
}
