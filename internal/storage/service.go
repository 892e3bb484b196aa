package storage

import (
	"github.com/manacart/manacart/internal/storage/repository"
)

// Service bundles the database handle with its repositories. It is the
// persistence collaborator handed to the HTTP and checkout layers.
type Service struct {
	db        *DB
	decks     repository.DeckRepository
	cards     repository.CardRepository
	orders    repository.OrderRepository
	discounts repository.DiscountRepository
}

// NewService creates a storage service over an open database.
func NewService(db *DB) *Service {
	conn := db.Conn()
	return &Service{
		db:        db,
		decks:     repository.NewDeckRepository(conn),
		cards:     repository.NewCardRepository(conn),
		orders:    repository.NewOrderRepository(conn),
		discounts: repository.NewDiscountRepository(conn),
	}
}

// Decks returns the deck repository.
func (s *Service) Decks() repository.DeckRepository { return s.decks }

// Cards returns the card cache repository.
func (s *Service) Cards() repository.CardRepository { return s.cards }

// Orders returns the order repository.
func (s *Service) Orders() repository.OrderRepository { return s.orders }

// Discounts returns the discount repository.
func (s *Service) Discounts() repository.DiscountRepository { return s.discounts }

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}
