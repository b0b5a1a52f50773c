package service

import (
	"context"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// stubFileStore records stored and removed refs.
type stubFileStore struct {
	nextRef int
	stored  map[string]string
	removed []string
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{stored: map[string]string{}}
}

func (s *stubFileStore) Store(filename string, contents io.Reader) (string, error) {
	data, err := io.ReadAll(contents)
	if err != nil {
		return "", err
	}
	s.nextRef++
	ref := "ref-" + strconv.Itoa(s.nextRef)
	s.stored[ref] = filename + ":" + string(data)
	return ref, nil
}

func (s *stubFileStore) Remove(ref string) error {
	s.removed = append(s.removed, ref)
	delete(s.stored, ref)
	return nil
}

func menuFixture() (*MenuService, *stubMenuRepo, *stubFileStore) {
	menus := newStubMenuRepo()
	menus.addMenu(domain.Menu{ID: "lunch", Name: "Lunch"})
	files := newStubFileStore()
	return NewMenuService(menus, files), menus, files
}

func TestAddItemStoresImageAndRoundsPrice(t *testing.T) {
	svc, _, files := menuFixture()

	item, err := svc.AddItem(context.Background(), ItemInput{
		MenuID:    "lunch",
		Name:      "Tomato Soup",
		Price:     4.499,
		ImageName: "soup.png",
		Image:     strings.NewReader("bytes"),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Price != 4.50 {
		t.Fatalf("price %v, want 4.50", item.Price)
	}
	if item.ImageRef == "" {
		t.Fatal("item got no image ref")
	}
	if _, ok := files.stored[item.ImageRef]; !ok {
		t.Fatalf("image %q not in store", item.ImageRef)
	}
}

func TestAddItemUnknownMenu(t *testing.T) {
	svc, _, _ := menuFixture()

	_, err := svc.AddItem(context.Background(), ItemInput{
		MenuID: "nope",
		Name:   "Tomato Soup",
		Price:  4.50,
		Image:  strings.NewReader("bytes"),
	})
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateItemReplacesImage(t *testing.T) {
	svc, _, files := menuFixture()

	item, err := svc.AddItem(context.Background(), ItemInput{
		MenuID:    "lunch",
		Name:      "Tomato Soup",
		Price:     4.50,
		ImageName: "soup.png",
		Image:     strings.NewReader("v1"),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	oldRef := item.ImageRef

	updated, err := svc.UpdateItem(context.Background(), item.ID, ItemInput{
		ImageName: "soup-v2.png",
		Image:     strings.NewReader("v2"),
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.ImageRef == oldRef {
		t.Fatal("image ref not replaced")
	}
	if updated.Name != "Tomato Soup" || updated.Price != 4.50 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if len(files.removed) != 1 || files.removed[0] != oldRef {
		t.Fatalf("old image not removed: %v", files.removed)
	}
}

func TestUpdateItemWithoutImageKeepsRef(t *testing.T) {
	svc, _, files := menuFixture()

	item, err := svc.AddItem(context.Background(), ItemInput{
		MenuID:    "lunch",
		Name:      "Tomato Soup",
		Price:     4.50,
		ImageName: "soup.png",
		Image:     strings.NewReader("v1"),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	updated, err := svc.UpdateItem(context.Background(), item.ID, ItemInput{Price: 5.25})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.ImageRef != item.ImageRef {
		t.Fatal("image ref changed without an upload")
	}
	if updated.Price != 5.25 {
		t.Fatalf("price %v, want 5.25", updated.Price)
	}
	if len(files.removed) != 0 {
		t.Fatalf("unexpected removals: %v", files.removed)
	}
}

func TestRemoveItemDeletesImage(t *testing.T) {
	svc, _, files := menuFixture()

	item, err := svc.AddItem(context.Background(), ItemInput{
		MenuID:    "lunch",
		Name:      "Tomato Soup",
		Price:     4.50,
		ImageName: "soup.png",
		Image:     strings.NewReader("v1"),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := svc.RemoveItem(context.Background(), item.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(files.stored) != 0 {
		t.Fatalf("image survived removal: %v", files.stored)
	}

	if err := svc.RemoveItem(context.Background(), item.ID); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
