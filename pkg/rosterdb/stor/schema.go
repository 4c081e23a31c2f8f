package stor

import "github.com/hashicorp/go-memdb"

const (
	TeamTable    = "team"
	BindingTable = "binding"

	// PK is the primary key index. memdb requires every table to have an "id" index.
	PK         = "id"
	OwnerIndex = "owner"
)

func Schema() *memdb.DBSchema {
	ownerIndexer := &memdb.StringFieldIndex{Field: "OwnerID"}
	slotIndexer := &memdb.StringFieldIndex{Field: "Slot"}

	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			TeamTable: {
				Name: TeamTable,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:    PK,
						Unique:  true,
						Indexer: ownerIndexer,
					},
				},
			},
			BindingTable: {
				Name: BindingTable,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:    PK,
						Unique:  true,
						Indexer: &memdb.CompoundIndex{Indexes: []memdb.Indexer{ownerIndexer, slotIndexer}},
					},
					OwnerIndex: {
						Name:    OwnerIndex,
						Indexer: ownerIndexer,
					},
				},
			},
		},
	}
}
