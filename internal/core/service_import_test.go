package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

func makeRows(n int) []tabular.Record {
	rows := make([]tabular.Record, n)
	for i := range rows {
		rows[i] = tabular.Record{"descricao": "item", "categoria": "Escritório", "n": i}
	}
	return rows
}

func TestImportBatches(t *testing.T) {
	boom := errors.New("insert failed")

	tests := []struct {
		name         string
		rows         int
		size         int
		failBatches  map[int]bool
		want         BulkImportResult
		wantProgress []ImportProgress
	}{
		{
			name: "all batches succeed",
			rows: 25,
			size: 10,
			want: BulkImportResult{Total: 25, Success: 25, Errors: []BatchError{}},
			wantProgress: []ImportProgress{
				{Processed: 10, Total: 25, Success: 10},
				{Processed: 20, Total: 25, Success: 20},
				{Processed: 25, Total: 25, Success: 25},
			},
		},
		{
			name:        "failed batch does not stop the import",
			rows:        25,
			size:        10,
			failBatches: map[int]bool{2: true},
			want: BulkImportResult{
				Total:   25,
				Success: 15,
				Failed:  10,
				Errors:  []BatchError{{Batch: 2, Error: "insert failed"}},
			},
			wantProgress: []ImportProgress{
				{Processed: 10, Total: 25, Success: 10},
				{Processed: 20, Total: 25, Success: 10, Failed: 10},
				{Processed: 25, Total: 25, Success: 15, Failed: 10},
			},
		},
		{
			name:        "last partial batch fails",
			rows:        12,
			size:        5,
			failBatches: map[int]bool{3: true},
			want: BulkImportResult{
				Total:   12,
				Success: 10,
				Failed:  2,
				Errors:  []BatchError{{Batch: 3, Error: "insert failed"}},
			},
			wantProgress: []ImportProgress{
				{Processed: 5, Total: 12, Success: 5},
				{Processed: 10, Total: 12, Success: 10},
				{Processed: 12, Total: 12, Success: 10, Failed: 2},
			},
		},
		{
			name: "no rows",
			rows: 0,
			size: 10,
			want: BulkImportResult{Errors: []BatchError{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := 0
			insert := func(_ context.Context, rows []tabular.Record) error {
				batch++
				if tt.failBatches[batch] {
					return boom
				}
				return nil
			}
			var progress []ImportProgress

			got := importBatches(context.Background(), makeRows(tt.rows), tt.size, insert, func(p ImportProgress) {
				progress = append(progress, p)
			})

			if diff := cmp.Diff(&tt.want, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantProgress, progress); diff != "" {
				t.Errorf("progress mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportBatches_BatchContents(t *testing.T) {
	var sizes []int
	insert := func(_ context.Context, rows []tabular.Record) error {
		sizes = append(sizes, len(rows))
		return nil
	}
	importBatches(context.Background(), makeRows(23), 0, insert, nil)

	if diff := cmp.Diff([]int{10, 10, 3}, sizes); diff != "" {
		t.Errorf("batch sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestImportBatches_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	insert := func(_ context.Context, rows []tabular.Record) error {
		calls++
		cancel()
		return nil
	}

	got := importBatches(ctx, makeRows(30), 10, insert, nil)
	if calls != 1 {
		t.Errorf("insert called %d times, want 1", calls)
	}
	if got.Success != 10 || got.Failed != 20 || len(got.Errors) != 2 {
		t.Errorf("result = %+v, want 10 success and 20 failed in 2 batches", got)
	}
	if got.Success+got.Failed != got.Total {
		t.Errorf("success + failed = %d, want total %d", got.Success+got.Failed, got.Total)
	}
}
