package keyboard

import "testing"

func TestCallbackRoundTrip(t *testing.T) {
	data := EncodeCallback(ActionExport, "pdf")
	cb, err := ParseCallback(data)
	if err != nil {
		t.Fatalf("ParseCallback: %v", err)
	}
	if cb.Action != ActionExport || cb.Value != "pdf" {
		t.Fatalf("callback = %+v", cb)
	}

	if _, err := ParseCallback("garbage"); err == nil {
		t.Fatal("expected error for data without separator")
	}
}

func TestIndexKeyboard_FolderButtonsNeedFolder(t *testing.T) {
	b := NewBuilder()

	if rows := b.IndexKeyboard("", false).InlineKeyboard; len(rows) != 1 {
		t.Fatalf("rows without folder = %d", len(rows))
	}

	rows := b.IndexKeyboard("oak_tables", true).InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("rows with folder = %d", len(rows))
	}
	if got := *rows[1][0].CallbackData; got != "index:folder" {
		t.Errorf("folder button data = %s", got)
	}
	if got := rows[2][0].Text; got != "☑ /reindex: specific folder only" {
		t.Errorf("scope label = %s", got)
	}
}
