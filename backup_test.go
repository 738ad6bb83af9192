package agendah

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	d := MustParseDate("2025-08-29")

	require.NoError(t, src.PutEntry(ctx, &Entry{
		Date:      d,
		Anchor:    "fechar proposta",
		Tasks:     []Task{{Text: "ligar", Done: true}},
		Tags:      []string{"trabalho"},
		CreatedAt: 100,
		UpdatedAt: 200,
	}))
	payload := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	att := NewAttachment(d, "foto.png", "image/png", payload, time.UnixMilli(1000))
	require.NoError(t, src.AddAttachment(ctx, att, time.UnixMilli(1000)))
	require.NoError(t, src.PutCash(ctx, NewCashItem(d, A(1234.5), Amount{}, "projeto", time.UnixMilli(1000))))

	snap, err := ExportAll(ctx, src)
	require.NoError(t, err)
	require.Len(t, snap.Attachments, 1)
	assert.Nil(t, snap.Attachments[0].Payload, "snapshots carry data URLs, not raw payloads")
	assert.True(t, strings.HasPrefix(snap.Attachments[0].PayloadDataURL, "data:image/png;base64,"))

	// Through the file format and into a fresh store.
	var buf bytes.Buffer
	require.NoError(t, EncodeSnapshot(&buf, snap))
	decoded, err := DecodeSnapshot(&buf)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.NoError(t, ImportAll(ctx, dst, decoded))

	entries, err := dst.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fechar proposta", entries[0].Anchor)
	assert.Equal(t, int64(100), entries[0].CreatedAt)

	got, err := dst.GetAttachment(ctx, att.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, payload, got.Payload, "payload must survive the round trip byte for byte")
	assert.Empty(t, got.PayloadDataURL)

	cash := dst.ListCashByDate(ctx, d)
	require.Len(t, cash, 1)
	assert.Equal(t, "R$ 1234,50", cash[0].InVal.String())
}

func TestImportClearsFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.PutEntry(ctx, &Entry{Date: MustParseDate("2025-01-01"), Anchor: "velho"}))

	snap := &Snapshot{
		Entries: []Entry{{Date: MustParseDate("2025-08-29"), Anchor: "novo"}},
	}
	require.NoError(t, ImportAll(ctx, s, snap))

	all, err := s.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "novo", all[0].Anchor)
}

func TestImportBadPayloadAborts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	snap := &Snapshot{
		Entries: []Entry{{Date: MustParseDate("2025-08-29"), Anchor: "fica"}},
		Attachments: []Attachment{{
			ID:             "a1",
			EntryDate:      MustParseDate("2025-08-29"),
			PayloadDataURL: "data:image/png;base64,%%%not-base64%%%",
		}},
	}
	err := ImportAll(ctx, s, snap)
	require.ErrorIs(t, err, ErrImportDecode)

	// No rollback: records imported before the failure stay.
	all, scanErr := s.AllEntries(ctx)
	require.NoError(t, scanErr)
	assert.Len(t, all, 1)
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	_, err := DecodeSnapshot(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, ErrImportDecode)
}

func TestSnapshotJSONShape(t *testing.T) {
	snap := &Snapshot{
		Entries: []Entry{{
			Date:  MustParseDate("2025-08-29"),
			Tasks: []Task{}, Tags: []string{}, Attachments: []string{},
		}},
		Attachments: []Attachment{},
		Cash: []CashItem{{
			ID:        "c1",
			EntryDate: MustParseDate("2025-08-29"),
			InVal:     A(1234.5),
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeSnapshot(&buf, snap))
	out := buf.String()

	assert.Contains(t, out, `"entries"`)
	assert.Contains(t, out, `"attachments"`)
	assert.Contains(t, out, `"cash"`)
	assert.Contains(t, out, `"date": "2025-08-29"`)
	assert.Contains(t, out, `"inVal": 1234.5`, "amounts are plain numbers")
	assert.NotContains(t, out, "blobDataUrl", "empty payloads are omitted")
}

func TestDecodeDataURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		want  []byte
		isErr bool
	}{
		{"valid", "data:text/plain;base64,b2k=", []byte("oi"), false},
		{"empty payload", "data:text/plain;base64,", []byte{}, false},
		{"not a data url", "https://example.com/x.png", nil, true},
		{"missing comma", "data:text/plain;base64", nil, true},
		{"percent encoding unsupported", "data:text/plain,hello", nil, true},
		{"bad base64", "data:text/plain;base64,!!", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeDataURL(tt.url)
			if tt.isErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
