package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/infrastructure/memory"
)

func TestLedger_FiltraPorProductoYTalla(t *testing.T) {
	l := memory.NewLedger()
	l.AddColor(entity.Color{ID: 5, Name: "Rojo"})
	l.AddReceipt(
		entity.MovementRecord{ProductID: 1, SizeCode: "M", ColorID: 5, Qty: 2},
		entity.MovementRecord{ProductID: 1, SizeCode: "L", ColorID: 5, Qty: 3},
		entity.MovementRecord{ProductID: 2, SizeCode: "M", ColorID: 5, Qty: 9},
	)

	size := "M"
	got, err := l.ListReceipts(context.Background(), repository.MovementFilter{ProductID: 1, SizeCode: &size, WithColorNames: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rojo", got[0].ColorName)
	assert.Equal(t, int64(2), got[0].Qty)

	all, err := l.ListReceipts(context.Background(), repository.MovementFilter{ProductID: 1})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Empty(t, all[0].ColorName, "sin WithColorNames no se resuelve el nombre")
}

func TestLedger_RunReadOnlyVeFotoCongelada(t *testing.T) {
	l := memory.NewLedger()
	l.AddReceipt(entity.MovementRecord{ProductID: 1, SizeCode: "M", ColorID: 5, Qty: 2})

	err := l.RunReadOnly(context.Background(), func(rec repository.ReceiptRepository, rea repository.RealizationRepository) error {
		l.AddRealization(entity.MovementRecord{ProductID: 1, SizeCode: "M", ColorID: 5, Qty: 1})
		got, err := rea.ListRealizations(context.Background(), repository.MovementFilter{ProductID: 1})
		require.NoError(t, err)
		assert.Empty(t, got, "la escritura concurrente no debe verse dentro de la foto")
		return nil
	})
	require.NoError(t, err)

	got, err := l.ListRealizations(context.Background(), repository.MovementFilter{ProductID: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLedger_ContextoCancelado(t *testing.T) {
	l := memory.NewLedger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.ListReceipts(ctx, repository.MovementFilter{ProductID: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
