package addon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий объявленных add-on'ов и их связей.
// Связи хранятся в таблице addon_edges(addon_id, related_id, edge_type),
// edge_type: 'prerequisite' | 'incompatible'.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория add-on'ов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает add-on вместе с его связями
func (r *Repository) Get(ctx context.Context, id int64) (*domain.AddOnNode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("addons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	node := &domain.AddOnNode{}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&node.ID)
	if err == sql.ErrNoRows {
		return nil, ErrAddOnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan add-on: %v", ErrScanRow, err)
	}

	if err := r.loadEdges(ctx, executor, node); err != nil {
		return nil, err
	}

	return node, nil
}

func (r *Repository) loadEdges(ctx context.Context, executor dbmetrics.DBExecutor, node *domain.AddOnNode) error {
	query, args, err := psqlbuilder.Select("related_id", "edge_type").
		From("addon_edges").
		Where(squirrel.Eq{"addon_id": node.ID}).
		OrderBy("related_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadEdges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadEdges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var relatedID int64
		var edgeType string
		if err := rows.Scan(&relatedID, &edgeType); err != nil {
			return fmt.Errorf("%w: loadEdges - scan row: %v", ErrScanRow, err)
		}

		switch edgeType {
		case "prerequisite":
			node.Prerequisites = append(node.Prerequisites, relatedID)
		case "incompatible":
			node.IncompatibleWith = append(node.IncompatibleWith, relatedID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadEdges - rows error: %v", ErrScanRow, err)
	}

	return nil
}
