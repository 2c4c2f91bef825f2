package app

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/five82/stockroom/internal/upc"
)

type fakeAdder struct {
	adds []stockCall
	fail map[string]error
}

type stockCall struct {
	upc   string
	shelf string
}

func (f *fakeAdder) AddStock(_ context.Context, code, shelf string) error {
	if err := f.fail[code]; err != nil {
		return err
	}
	f.adds = append(f.adds, stockCall{code, shelf})
	return nil
}

func TestImportAddsEachLine(t *testing.T) {
	input := strings.Join([]string{
		"# pantry restock",
		"012345000065",
		"",
		"01234565, garage",
		"042100005264,pantry/top",
	}, "\n")
	adder := &fakeAdder{}

	report, err := Import(context.Background(), adder, strings.NewReader(input), "pantry", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if report.Total != 3 || report.Added != 3 || len(report.Failed) != 0 {
		t.Fatalf("report = %+v, want 3 added", report)
	}
	want := []stockCall{
		{"012345000065", "pantry"},
		{"012345000065", "garage"},
		{"042100005264", "pantry/top"},
	}
	if len(adder.adds) != len(want) {
		t.Fatalf("adds = %v, want %v", adder.adds, want)
	}
	for i := range want {
		if adder.adds[i] != want[i] {
			t.Fatalf("adds[%d] = %v, want %v", i, adder.adds[i], want[i])
		}
	}
}

func TestImportReportsLineFailures(t *testing.T) {
	input := "012345000065\n01234566\nnot-a-code\n042100005264\n"
	serverErr := errors.New("add stock: status 500")
	adder := &fakeAdder{fail: map[string]error{"042100005264": serverErr}}

	// Failures belong in the report; logging them would tear the progress bar.
	var logged bytes.Buffer
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	report, err := Import(context.Background(), adder, strings.NewReader(input), "pantry", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if logged.Len() != 0 {
		t.Fatalf("Import logged %q, want nothing", logged.String())
	}
	if report.Total != 4 || report.Added != 1 {
		t.Fatalf("report = %+v, want 1 of 4 added", report)
	}
	if len(report.Failed) != 3 {
		t.Fatalf("Failed = %v, want 3 entries", report.Failed)
	}
	if report.Failed[0].Line != 2 || !errors.Is(report.Failed[0], upc.ErrChecksumMismatch) {
		t.Fatalf("Failed[0] = %v, want checksum mismatch on line 2", report.Failed[0])
	}
	if report.Failed[1].Line != 3 || !errors.Is(report.Failed[1], upc.ErrInvalidFormat) {
		t.Fatalf("Failed[1] = %v, want invalid format on line 3", report.Failed[1])
	}
	if report.Failed[2].Line != 4 || !errors.Is(report.Failed[2], serverErr) {
		t.Fatalf("Failed[2] = %v, want server error on line 4", report.Failed[2])
	}
}

func TestImportRequiresShelf(t *testing.T) {
	adder := &fakeAdder{}
	report, err := Import(context.Background(), adder, strings.NewReader("012345000065\n"), "", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(report.Failed) != 1 || len(adder.adds) != 0 {
		t.Fatalf("report = %+v, adds = %v; want one failure and no adds", report, adder.adds)
	}
}

func TestImportStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	adder := &fakeAdder{}

	_, err := Import(ctx, adder, strings.NewReader("012345000065\n"), "pantry", &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(adder.adds) != 0 {
		t.Fatalf("adds = %v, want none", adder.adds)
	}
}
