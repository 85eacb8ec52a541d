package amqp

import "testing"

func TestTransactionSyncMessageJSON(t *testing.T) {
	msg := NewTransactionSyncMessage(42)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := TransactionSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != 42 {
		t.Fatalf("id = %d, want 42", decoded.ID)
	}
	if decoded.Timestamp.IsZero() {
		t.Fatal("timestamp not carried")
	}
}

func TestTransactionSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionSyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
