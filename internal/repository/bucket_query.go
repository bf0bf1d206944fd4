package repository

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"gorm.io/gorm"
)

// bucketPredicate compiles a state filter into a SQL predicate over the bookings table.
// ALL yields nil (no filter).
func bucketPredicate(f bookingDomain.StateFilter) (sq.Sqlizer, error) {
	switch f.State {
	case bookingDomain.StateAll:
		return nil, nil
	case bookingDomain.StateCurrent:
		return sq.And{
			sq.LtOrEq{"start_at": f.Now},
			sq.GtOrEq{"end_at": f.Now},
		}, nil
	case bookingDomain.StatePast:
		return sq.Lt{"end_at": f.Now}, nil
	case bookingDomain.StateFuture:
		return sq.Gt{"start_at": f.Now}, nil
	case bookingDomain.StateWaiting:
		return sq.Eq{"status": string(bookingDomain.StatusWaiting)}, nil
	case bookingDomain.StateRejected:
		return sq.Eq{"status": string(bookingDomain.StatusRejected)}, nil
	default:
		return nil, domain.NewUnknownStateError(string(f.State))
	}
}

// ownedItemsPredicate restricts bookings to items owned by ownerID.
func ownedItemsPredicate(ownerID uuid.UUID) (sq.Sqlizer, error) {
	sub, args, err := sq.Select("id").From(ItemModel{}.TableName()).Where(sq.Eq{"owner_id": ownerID.String()}).ToSql()
	if err != nil {
		return nil, err
	}
	return sq.Expr("item_id IN ("+sub+")", args...), nil
}

// applyPredicates renders each non-nil predicate with '?' placeholders and
// adds it as a GORM where clause. GORM rebinds placeholders for the dialect.
func applyPredicates(db *gorm.DB, preds ...sq.Sqlizer) (*gorm.DB, error) {
	for _, p := range preds {
		if p == nil {
			continue
		}
		sql, args, err := p.ToSql()
		if err != nil {
			return nil, err
		}
		db = db.Where(sql, args...)
	}
	return db, nil
}
