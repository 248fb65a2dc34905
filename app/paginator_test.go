package app

import (
	"errors"
	"testing"

	"github.com/blogmates/blogmates-tui/domain"
)

func makePage(nums []int, total, totalPages, number, size int) domain.Page[int] {
	return domain.Page[int]{
		Items:      nums,
		TotalCount: total,
		TotalPages: totalPages,
		Number:     number,
		Size:       size,
	}
}

func TestLoad_FirstPageOnlyBeforeTotalsKnown(t *testing.T) {
	p := NewPaginator[int](10)
	if _, ok := p.Load(2); ok {
		t.Fatalf("page 2 must be rejected before totals are known")
	}
	seq, ok := p.Load(1)
	if !ok || seq == 0 {
		t.Fatalf("initial load of page 1 must be accepted")
	}
	if !p.Loading {
		t.Fatalf("expected loading=true after Load")
	}
}

func TestApply_InstallsPageAndClearsError(t *testing.T) {
	p := NewPaginator[int](10)
	seq, _ := p.Load(1)
	p.Err = errors.New("stale error")

	if !p.Apply(seq, makePage([]int{1, 2, 3}, 23, 3, 1, 10)) {
		t.Fatalf("current-seq apply must be accepted")
	}
	if p.Loading || p.Err != nil {
		t.Fatalf("apply must clear loading and error: loading=%v err=%v", p.Loading, p.Err)
	}
	if len(p.Items) != 3 || p.TotalCount != 23 || p.TotalPages != 3 || p.Current != 1 {
		t.Fatalf("unexpected state after apply: %+v", p)
	}
}

func TestGoToPage_OutOfRangeIsNoOp(t *testing.T) {
	p := NewPaginator[int](10)
	seq, _ := p.Load(1)
	p.Apply(seq, makePage([]int{1}, 21, 3, 1, 10))

	before := *p
	for _, page := range []int{0, -1, 4, 100} {
		if _, ok := p.GoToPage(page); ok {
			t.Fatalf("page %d must be rejected", page)
		}
	}
	if p.Current != before.Current || p.Loading || len(p.Items) != len(before.Items) {
		t.Fatalf("state must be unchanged after rejected navigation")
	}

	if _, ok := p.GoToPage(3); !ok {
		t.Fatalf("page 3 of 3 must be accepted")
	}
}

func TestFail_KeepsPriorItems(t *testing.T) {
	p := NewPaginator[int](10)
	seq, _ := p.Load(1)
	p.Apply(seq, makePage([]int{1, 2}, 2, 1, 1, 10))

	seq, _ = p.Reload()
	wantErr := errors.New("boom")
	if !p.Fail(seq, wantErr) {
		t.Fatalf("current-seq failure must be recorded")
	}
	if p.Err == nil || len(p.Items) != 2 {
		t.Fatalf("failure must keep prior items visible: err=%v items=%d", p.Err, len(p.Items))
	}
}

func TestApply_DropsStaleResponse(t *testing.T) {
	p := NewPaginator[int](10)
	seq, _ := p.Load(1)
	p.Apply(seq, makePage([]int{1}, 30, 3, 1, 10))

	staleSeq, _ := p.GoToPage(2)
	newSeq, ok := p.GoToPage(3)
	if !ok {
		t.Fatalf("second navigation must be accepted")
	}

	if p.Apply(staleSeq, makePage([]int{2}, 30, 3, 2, 10)) {
		t.Fatalf("superseded response must be dropped")
	}
	if p.Current != 1 {
		t.Fatalf("stale response must not move the page, got %d", p.Current)
	}

	if !p.Apply(newSeq, makePage([]int{3}, 30, 3, 3, 10)) {
		t.Fatalf("latest response must be applied")
	}
	if p.Current != 3 || p.Items[0] != 3 {
		t.Fatalf("unexpected state after latest apply: %+v", p)
	}
}

func TestFail_DropsStaleError(t *testing.T) {
	p := NewPaginator[int](10)
	first, _ := p.Load(1)
	second, _ := p.Load(1)

	if p.Fail(first, errors.New("slow failure")) {
		t.Fatalf("superseded error must be dropped")
	}
	if p.Err != nil {
		t.Fatalf("stale error must not surface")
	}
	if !p.Apply(second, makePage(nil, 0, 1, 1, 10)) {
		t.Fatalf("latest response must still apply")
	}
}

func TestReload_ReissuesCurrentPage(t *testing.T) {
	p := NewPaginator[int](10)
	seq, _ := p.Load(1)
	p.Apply(seq, makePage([]int{1, 2}, 12, 2, 2, 10))

	seq, ok := p.Reload()
	if !ok {
		t.Fatalf("reload must be accepted")
	}
	p.Apply(seq, makePage([]int{1}, 11, 2, 2, 10))
	if p.TotalCount != 11 || p.Current != 2 {
		t.Fatalf("reload must refresh totals in place: %+v", p)
	}
}

func TestReset_InvalidatesInFlightLoad(t *testing.T) {
	p := NewPaginator[int](10)
	seq, _ := p.Load(1)
	p.Reset()
	if p.Apply(seq, makePage([]int{9}, 1, 1, 1, 10)) {
		t.Fatalf("response from before reset must be dropped")
	}
	if len(p.Items) != 0 || p.Loading {
		t.Fatalf("reset must clear state: %+v", p)
	}
}
