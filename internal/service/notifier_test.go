package service

import (
	"bytes"
	"context"
	"testing"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	n.Notify(context.Background(), domain.NewAccount("Id-9", dec("1")), "Received 5 from account Id-1")

	out := buf.String()
	assert.Contains(t, out, `"account_id":"Id-9"`)
	assert.Contains(t, out, `"message":"Received 5 from account Id-1"`)
	assert.Contains(t, out, `"component":"notifier"`)
}

func TestMultiNotifier_FansOutInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockNotifier(ctrl)
	second := mocks.NewMockNotifier(ctrl)
	ctx := context.Background()
	acc := domain.NewAccount("A", dec("0"))

	gomock.InOrder(
		first.EXPECT().Notify(ctx, acc, "hello"),
		second.EXPECT().Notify(ctx, acc, "hello"),
	)

	MultiNotifier{first, second}.Notify(ctx, acc, "hello")
}

func TestMultiNotifier_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		MultiNotifier(nil).Notify(context.Background(), domain.NewAccount("A", dec("0")), "x")
	})
}
