package stor

import (
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

type MemdbBindingStor struct {
	db *memdb.MemDB
}

func NewMemdbBindingStor(db *memdb.MemDB) *MemdbBindingStor {
	return &MemdbBindingStor{db: db}
}

func (s *MemdbBindingStor) GetBinding(ownerID string, slot model.Slot) (*model.Binding, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(BindingTable, PK, ownerID, string(slot))
	if err != nil {
		return nil, fmt.Errorf("looking up %s binding for %s: %w", slot, ownerID, err)
	}

	if raw == nil {
		return nil, ErrNoBinding
	}

	b := *raw.(*model.Binding)
	return &b, nil
}

// PutBinding stores binding, replacing any previous binding for the same
// owner and slot.
func (s *MemdbBindingStor) PutBinding(binding *model.Binding) error {
	if binding.OwnerID == "" || binding.Slot == "" {
		return fmt.Errorf("binding requires an owner and a slot")
	}

	b := *binding

	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(BindingTable, &b); err != nil {
		return fmt.Errorf("saving %s binding for %s: %w", b.Slot, b.OwnerID, err)
	}

	txn.Commit()
	return nil
}

// DeleteBinding removes the binding for owner and slot. Deleting a binding
// that doesn't exist is not an error.
func (s *MemdbBindingStor) DeleteBinding(ownerID string, slot model.Slot) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	n, err := txn.DeleteAll(BindingTable, PK, ownerID, string(slot))
	if err != nil {
		return fmt.Errorf("deleting %s binding for %s: %w", slot, ownerID, err)
	}

	if n != 0 {
		txn.Commit()
	}

	return nil
}

func (s *MemdbBindingStor) ListBindings(ownerID string) ([]model.Binding, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(BindingTable, OwnerIndex, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing bindings for %s: %w", ownerID, err)
	}

	var bindings []model.Binding
	for obj := it.Next(); obj != nil; obj = it.Next() {
		bindings = append(bindings, *obj.(*model.Binding))
	}

	return bindings, nil
}
