// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mail

import (
	"context"
	"strings"
	"testing"
)

func TestWelcome(t *testing.T) {
	msg, err := Welcome("fan@example.com", WelcomeData{
		Site:           "Mind's Eye View",
		Name:           "<Sam>",
		UnsubscribeURL: "https://band.example.com/api/unsubscribe/abc",
	})
	if err != nil {
		t.Fatalf("Welcome: %v", err)
	}

	if msg.To != "fan@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "Mind's Eye View") {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "https://band.example.com/api/unsubscribe/abc") {
		t.Error("unsubscribe link missing")
	}
	if strings.Contains(msg.HTML, "<Sam>") {
		t.Error("name must be HTML escaped")
	}
	if got := msg.Headers["List-Unsubscribe"]; got != "<https://band.example.com/api/unsubscribe/abc>" {
		t.Errorf("List-Unsubscribe = %q", got)
	}
	if got := msg.Headers["List-Unsubscribe-Post"]; got != "List-Unsubscribe=One-Click" {
		t.Errorf("List-Unsubscribe-Post = %q", got)
	}
}

func TestWelcome_NoName(t *testing.T) {
	msg, err := Welcome("fan@example.com", WelcomeData{Site: "Band"})
	if err != nil {
		t.Fatalf("Welcome: %v", err)
	}
	if !strings.HasPrefix(msg.HTML, "<p>Hi,</p>") {
		t.Errorf("HTML = %q", msg.HTML)
	}
	if msg.Headers != nil {
		t.Errorf("Headers = %v, want none without an unsubscribe link", msg.Headers)
	}
}

func TestLogSender(t *testing.T) {
	var s Sender = LogSender{}
	if err := s.Send(context.Background(), Message{To: "a@b.c", Subject: "x"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
}
