package common_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/application/common"
)

type pingRequest struct{ Value string }

type otherRequest struct{}

type echoHandler struct{}

func (h *echoHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	ping := request.(*pingRequest)
	return fmt.Sprintf("pong:%s", ping.Value), nil
}

func TestMediator_DispatchesByConcreteType(t *testing.T) {
	// Arrange
	med := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](med, &echoHandler{}))

	// Act
	response, err := med.Send(context.Background(), &pingRequest{Value: "hello"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:hello", response)
}

func TestMediator_RejectsDuplicateRegistration(t *testing.T) {
	// Arrange
	med := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](med, &echoHandler{}))

	// Act
	err := common.RegisterHandler[*pingRequest](med, &echoHandler{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate handler")
}

func TestMediator_UnknownRequestType(t *testing.T) {
	// Arrange
	med := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](med, &echoHandler{}))

	// Act
	_, err := med.Send(context.Background(), &otherRequest{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler")
}

func TestMediator_RejectsNilRegistration(t *testing.T) {
	// Arrange
	med := common.NewMediator()

	// Act / Assert
	assert.Error(t, med.Register(nil, &echoHandler{}))
	assert.Error(t, med.Register(reflect.TypeOf(&pingRequest{}), nil))
}
