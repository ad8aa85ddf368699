package services

import (
	"errors"

	"taskboard/apperr"
	"taskboard/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// evacuatedPosition is the out-of-range sentinel an item is parked at while
// its siblings shift. It keeps intermediate states free of duplicate
// positions even when the store enforces uniqueness per scope.
const evacuatedPosition = -1

// orderedSet maintains a contiguous zero-based ordering over the rows of one
// model, scoped by a parent key: columns ordered within a project, tasks
// ordered within a column. Every method must be called inside the
// transaction that performs the surrounding mutation; each one starts with a
// locking read of the affected scope, so concurrent writers on the same
// scope serialize instead of interleaving their shifts.
type orderedSet struct {
	model    any
	scopeCol string
	idCol    string
}

var (
	columnOrder = orderedSet{model: &model.Column{}, scopeCol: "project_id", idCol: "column_id"}
	taskOrder   = orderedSet{model: &model.Task{}, scopeCol: "column_id", idCol: "task_id"}
)

// insertPosition resolves the position a new item gets in a scope of count
// items. A nil request appends; a request past the end is clamped so the
// range stays contiguous.
func insertPosition(count int, requested *int) (int, error) {
	if requested == nil {
		return count, nil
	}
	if *requested < 0 {
		return 0, apperr.BadRequestf("position must not be negative")
	}
	if *requested > count {
		return count, nil
	}
	return *requested, nil
}

// moveSpan returns the inclusive range [lo, hi] of sibling positions that
// shift by delta when an item moves from oldPos to newPos within one scope.
func moveSpan(oldPos, newPos int) (lo, hi, delta int) {
	if oldPos < newPos {
		return oldPos + 1, newPos, -1
	}
	return newPos, oldPos - 1, +1
}

func (o orderedSet) scoped(tx *gorm.DB, scopeID uint) *gorm.DB {
	return tx.Model(o.model).Where(o.scopeCol+" = ?", scopeID)
}

// lockScope takes row locks on every item of a scope and returns their
// count. Two transactions appending to or shifting the same scope block
// here, one after the other, so the count and every position derived from
// it stay valid until commit. The sqlite driver drops the locking clause;
// sqlite's single-writer model provides the same guarantee.
func (o orderedSet) lockScope(tx *gorm.DB, scopeID uint) (int, error) {
	var n int64
	err := tx.Model(o.model).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(o.scopeCol+" = ?", scopeID).
		Count(&n).Error
	return int(n), err
}

// current reads the item's scope and position with a row lock, inside the
// caller's transaction. Positions handed in from outside the transaction
// may be stale by the time it runs; this read is the authoritative one.
func (o orderedSet) current(tx *gorm.DB, itemID uint) (scopeID uint, pos int, err error) {
	var row struct {
		ScopeID  uint
		Position int
	}
	err = tx.Model(o.model).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select(o.scopeCol+" AS scope_id, position").
		Where(o.idCol+" = ?", itemID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, apperr.NotFoundf("item no longer exists")
	}
	if err != nil {
		return 0, 0, err
	}
	return row.ScopeID, row.Position, nil
}

// Insert makes room for a new item and returns the position it must be
// created at. Siblings at or after the returned position are shifted up.
func (o orderedSet) Insert(tx *gorm.DB, scopeID uint, requested *int) (int, error) {
	count, err := o.lockScope(tx, scopeID)
	if err != nil {
		return 0, err
	}
	pos, err := insertPosition(count, requested)
	if err != nil {
		return 0, err
	}
	if pos < count {
		err = o.scoped(tx, scopeID).
			Where("position >= ?", pos).
			UpdateColumn("position", gorm.Expr("position + 1")).Error
		if err != nil {
			return 0, err
		}
	}
	return pos, nil
}

// Remove closes the gap left by an item that was deleted at removedPos. The
// caller must have read removedPos inside the same transaction.
func (o orderedSet) Remove(tx *gorm.DB, scopeID uint, removedPos int) error {
	return o.scoped(tx, scopeID).
		Where("position > ?", removedPos).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
}

// Move relocates one item inside its scope. The item's current position is
// read under lock; the item is then evacuated to a sentinel position, the
// affected sub-range shifts by one, and the item is assigned its final
// position.
func (o orderedSet) Move(tx *gorm.DB, itemID uint, newPos int) error {
	scopeID, oldPos, err := o.current(tx, itemID)
	if err != nil {
		return err
	}
	count, err := o.lockScope(tx, scopeID)
	if err != nil {
		return err
	}
	if newPos < 0 || newPos >= count {
		return apperr.BadRequestf("position must be between 0 and %d", count-1)
	}
	if oldPos == newPos {
		return nil
	}

	if err := o.setPosition(tx, itemID, evacuatedPosition); err != nil {
		return err
	}
	lo, hi, delta := moveSpan(oldPos, newPos)
	err = o.scoped(tx, scopeID).
		Where("position >= ? AND position <= ?", lo, hi).
		UpdateColumn("position", gorm.Expr("position + ?", delta)).Error
	if err != nil {
		return err
	}
	return o.setPosition(tx, itemID, newPos)
}

// MoveAcross relocates an item into another scope. A nil requested position
// appends at the destination's end. The item is evacuated, the gap it left
// is closed, a gap opens at the destination, and the item's scope column
// and position are written together.
func (o orderedSet) MoveAcross(tx *gorm.DB, newScopeID, itemID uint, requested *int) error {
	oldScopeID, oldPos, err := o.current(tx, itemID)
	if err != nil {
		return err
	}

	// both scopes are locked in ascending id order
	first, second := oldScopeID, newScopeID
	if second < first {
		first, second = second, first
	}
	counts := make(map[uint]int, 2)
	for _, id := range []uint{first, second} {
		n, err := o.lockScope(tx, id)
		if err != nil {
			return err
		}
		counts[id] = n
	}

	dstCount := counts[newScopeID]
	newPos := dstCount
	if requested != nil {
		if *requested < 0 || *requested > dstCount {
			return apperr.BadRequestf("position must be between 0 and %d", dstCount)
		}
		newPos = *requested
	}

	if err := o.setPosition(tx, itemID, evacuatedPosition); err != nil {
		return err
	}
	err = o.scoped(tx, oldScopeID).
		Where("position > ?", oldPos).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
	if err != nil {
		return err
	}
	err = o.scoped(tx, newScopeID).
		Where("position >= ?", newPos).
		UpdateColumn("position", gorm.Expr("position + 1")).Error
	if err != nil {
		return err
	}
	return tx.Model(o.model).
		Where(o.idCol+" = ?", itemID).
		UpdateColumns(map[string]any{o.scopeCol: newScopeID, "position": newPos}).Error
}

func (o orderedSet) setPosition(tx *gorm.DB, itemID uint, pos int) error {
	return tx.Model(o.model).
		Where(o.idCol+" = ?", itemID).
		UpdateColumn("position", pos).Error
}
