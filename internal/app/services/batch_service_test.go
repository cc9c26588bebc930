package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/app/models/dto"
	"github.com/jyhan-dev/seodang/internal/pkg/apperrors"
	"github.com/jyhan-dev/seodang/internal/pkg/filestorage"
)

// fakeReportService scripts per-student outcomes for batch tests.
type fakeReportService struct {
	failFor  map[int64]error
	panicFor map[int64]bool
	calls    []int64
}

func (f *fakeReportService) Generate(ctx context.Context, req *dto.GenerateReportRequest, requesterID int64) (*dto.GenerateReportResponse, error) {
	f.calls = append(f.calls, req.StudentID)
	if f.panicFor[req.StudentID] {
		panic("scripted panic")
	}
	if err, ok := f.failFor[req.StudentID]; ok {
		return nil, err
	}
	return &dto.GenerateReportResponse{ReportID: fmt.Sprintf("report-%d", req.StudentID)}, nil
}

func (f *fakeReportService) GetReport(ctx context.Context, id string) (*models.GeneratedReport, error) {
	return nil, apperrors.ErrReportNotFound
}

func (f *fakeReportService) ListReports(ctx context.Context, studentID *int64, page, size int) ([]models.GeneratedReport, int64, error) {
	return nil, 0, nil
}

func (f *fakeReportService) ArchiveReport(ctx context.Context, id string) error { return nil }

func (f *fakeReportService) SweepExpired(ctx context.Context) (int64, error) { return 0, nil }

type fakeFinder struct {
	reports []models.GeneratedReport
	err     error
}

func (f *fakeFinder) GetByIDs(ctx context.Context, ids []string) ([]models.GeneratedReport, error) {
	return f.reports, f.err
}

func newTestBatchService(t *testing.T, reports ReportService, finder reportFinder, limit int) (*batchServiceImpl, *filestorage.LocalStorage, *[]time.Duration) {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	svc := NewBatchService(reports, finder, storage, nil, limit, 50*time.Millisecond).(*batchServiceImpl)

	var sleeps []time.Duration
	svc.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return svc, storage, &sleeps
}

func TestGenerateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("counts always reconcile", func(t *testing.T) {
		fake := &fakeReportService{
			failFor: map[int64]error{2: errors.New("render blew up")},
		}
		svc, _, sleeps := newTestBatchService(t, fake, &fakeFinder{}, 10)

		result, err := svc.GenerateBatch(ctx, &dto.GenerateBatchRequest{StudentIDs: []int64{1, 2, 3}}, 7)
		if err != nil {
			t.Fatalf("GenerateBatch: %v", err)
		}

		if result.Total != 3 || result.Successful != 2 || result.Failed != 1 {
			t.Errorf("got total=%d successful=%d failed=%d", result.Total, result.Successful, result.Failed)
		}
		if result.Successful+result.Failed != result.Total {
			t.Error("successful+failed != total")
		}
		if len(result.Results) != result.Successful {
			t.Errorf("len(Results) = %d, want %d", len(result.Results), result.Successful)
		}
		if len(result.Errors) != result.Failed {
			t.Errorf("len(Errors) = %d, want %d", len(result.Errors), result.Failed)
		}
		if result.Errors[0].StudentID != 2 {
			t.Errorf("error keyed to student %d, want 2", result.Errors[0].StudentID)
		}

		// Delay between items only, never before the first.
		if len(*sleeps) != 2 {
			t.Errorf("slept %d times, want 2", len(*sleeps))
		}
	})

	t.Run("items run strictly in input order", func(t *testing.T) {
		fake := &fakeReportService{}
		svc, _, _ := newTestBatchService(t, fake, &fakeFinder{}, 10)

		_, err := svc.GenerateBatch(ctx, &dto.GenerateBatchRequest{StudentIDs: []int64{5, 3, 9, 1}}, 0)
		if err != nil {
			t.Fatalf("GenerateBatch: %v", err)
		}

		want := []int64{5, 3, 9, 1}
		for i, id := range want {
			if fake.calls[i] != id {
				t.Fatalf("call order %v, want %v", fake.calls, want)
			}
		}
	})

	t.Run("panic in one item is contained", func(t *testing.T) {
		fake := &fakeReportService{panicFor: map[int64]bool{2: true}}
		svc, _, _ := newTestBatchService(t, fake, &fakeFinder{}, 10)

		result, err := svc.GenerateBatch(ctx, &dto.GenerateBatchRequest{StudentIDs: []int64{1, 2, 3}}, 0)
		if err != nil {
			t.Fatalf("GenerateBatch: %v", err)
		}
		if result.Failed != 1 || result.Successful != 2 {
			t.Errorf("got successful=%d failed=%d, want 2/1", result.Successful, result.Failed)
		}
		if len(fake.calls) != 3 {
			t.Errorf("processed %d items, want all 3", len(fake.calls))
		}
	})

	t.Run("oversized batch is rejected outright", func(t *testing.T) {
		fake := &fakeReportService{}
		svc, _, _ := newTestBatchService(t, fake, &fakeFinder{}, 2)

		_, err := svc.GenerateBatch(ctx, &dto.GenerateBatchRequest{StudentIDs: []int64{1, 2, 3}}, 0)
		if !errors.Is(err, apperrors.ErrBatchTooLarge) {
			t.Fatalf("err = %v, want ErrBatchTooLarge", err)
		}
		if len(fake.calls) != 0 {
			t.Error("no item should run when the batch is rejected")
		}
	})
}

func TestPackageArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("missing files are skipped, present files packaged", func(t *testing.T) {
		finder := &fakeFinder{}
		svc, storage, _ := newTestBatchService(t, &fakeReportService{}, finder, 10)

		path, err := storage.SaveBytes([]byte("pdf-bytes"), "documents", "a.pdf")
		if err != nil {
			t.Fatalf("SaveBytes: %v", err)
		}

		finder.reports = []models.GeneratedReport{
			{ID: "a", DocumentPath: path},
			{ID: "b", DocumentPath: "documents/gone.pdf"}, // on record, not on disk
		}

		var buf bytes.Buffer
		written, err := svc.PackageArchive(ctx, []string{"a", "b", "c"}, &buf)
		if err != nil {
			t.Fatalf("PackageArchive: %v", err)
		}
		if written != 1 {
			t.Errorf("written = %d, want 1", written)
		}

		zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		if err != nil {
			t.Fatalf("zip.NewReader: %v", err)
		}
		if len(zr.File) != 1 || zr.File[0].Name != "a.pdf" {
			t.Fatalf("archive entries = %v, want [a.pdf]", entryNames(zr))
		}

		rc, err := zr.File[0].Open()
		if err != nil {
			t.Fatalf("open entry: %v", err)
		}
		defer rc.Close()
		content, _ := io.ReadAll(rc)
		if string(content) != "pdf-bytes" {
			t.Errorf("entry content = %q", content)
		}
	})

	t.Run("empty id list yields an empty valid archive", func(t *testing.T) {
		svc, _, _ := newTestBatchService(t, &fakeReportService{}, &fakeFinder{}, 10)

		var buf bytes.Buffer
		written, err := svc.PackageArchive(ctx, nil, &buf)
		if err != nil {
			t.Fatalf("PackageArchive: %v", err)
		}
		if written != 0 {
			t.Errorf("written = %d, want 0", written)
		}
		if _, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
			t.Errorf("empty archive not readable: %v", err)
		}
	})

	t.Run("lookup failure is fatal", func(t *testing.T) {
		svc, _, _ := newTestBatchService(t, &fakeReportService{}, &fakeFinder{err: errors.New("db down")}, 10)

		var buf bytes.Buffer
		if _, err := svc.PackageArchive(ctx, []string{"a"}, &buf); err == nil {
			t.Fatal("expected error")
		}
	})
}

func entryNames(zr *zip.Reader) []string {
	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	return names
}
