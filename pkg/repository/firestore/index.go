package firestore

import (
	"github.com/m-mizutani/fireconf"
)

// IndexConfig returns the composite indexes required by GetByCase.
func IndexConfig(opts ...Option) *fireconf.Config {
	f := &Firestore{collections: &collections{}}
	for _, opt := range opts {
		opt(f)
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: f.collections.messages(),
				Indexes: []fireconf.Index{
					{
						Fields: []fireconf.IndexField{
							{Path: "CaseID", Order: fireconf.OrderAscending},
							{Path: "CreatedAt", Order: fireconf.OrderDescending},
							{Path: "ID", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
