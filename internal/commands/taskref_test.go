package commands

import (
	"errors"
	"testing"

	"taskboard/internal/service"
)

func TestParseTaskRef_Position(t *testing.T) {
	ref, err := ParseTaskRef("5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Pos != 5 || ref.ID != "" {
		t.Errorf("expected position 5, got %+v", ref)
	}
	if ref.String() != "5" {
		t.Errorf("expected String() 5, got %q", ref.String())
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef("@42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "42" || ref.Pos != 0 {
		t.Errorf("expected id 42, got %+v", ref)
	}
	if ref.String() != "@42" {
		t.Errorf("expected String() @42, got %q", ref.String())
	}

	ref, err = ParseTaskRef("@MTIzNDU2Nzg5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "MTIzNDU2Nzg5" {
		t.Errorf("opaque ids should pass through, got %q", ref.ID)
	}
}

func TestParseTaskRef_Errors(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"", "task reference required"},
		{"abc", "invalid task reference: abc"},
		{"a1", "invalid task reference: a1"},
		{"-1", "invalid task reference: -1"},
		{"0", "task number out of range: 0"},
		{"@", "invalid task reference: @"},
		{"@a/b", "invalid task reference: @a/b"},
		{"٣", "invalid task reference: ٣"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			_, err := ParseTaskRef(tt.arg)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParseTaskRefs(t *testing.T) {
	refs, err := ParseTaskRefs([]string{"1", "@7", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TaskRef{{Pos: 1}, {ID: "7"}, {Pos: 3}}
	if len(refs) != len(want) {
		t.Fatalf("expected %d refs, got %d", len(want), len(refs))
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("ref %d: expected %+v, got %+v", i, want[i], refs[i])
		}
	}

	if _, err := ParseTaskRefs(nil); !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
	if _, err := ParseTaskRefs([]string{"1", "x"}); err == nil {
		t.Error("expected error for invalid second ref")
	}
}

func TestResolveRefs(t *testing.T) {
	view := []service.Task{{ID: "10"}, {ID: "20"}, {ID: "30"}}

	ids, err := resolveRefs(view, []TaskRef{{Pos: 3}, {ID: "99"}, {Pos: 1}, {ID: "30"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []service.TaskID{"30", "99", "10"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("id %d: expected %s, got %s", i, want[i], ids[i])
		}
	}

	_, err = resolveRefs(view, []TaskRef{{Pos: 4}})
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}
