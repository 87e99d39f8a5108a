//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/antique-store-api/internal/config"
	httpAPI "github.com/iyhunko/antique-store-api/internal/http"
	"github.com/iyhunko/antique-store-api/internal/http/controller"
	"github.com/iyhunko/antique-store-api/internal/model"
	"github.com/iyhunko/antique-store-api/internal/repository"
	"github.com/iyhunko/antique-store-api/internal/repository/memory"
	"github.com/iyhunko/antique-store-api/internal/service"
	sqspkg "github.com/iyhunko/antique-store-api/internal/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQueue is an in-process stand-in for one SQS queue.
// It satisfies both sqs.PublisherAPI and sqs.ConsumerAPI.
type fakeQueue struct {
	mu       sync.Mutex
	pending  []types.Message
	inFlight map[string]types.Message
	nextID   int
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{inFlight: make(map[string]types.Message)}
}

func (q *fakeQueue) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	id := fmt.Sprintf("msg-%d", q.nextID)
	q.pending = append(q.pending, types.Message{
		MessageId:     aws.String(id),
		ReceiptHandle: aws.String("rh-" + id),
		Body:          params.MessageBody,
	})
	return &sqs.SendMessageOutput{MessageId: aws.String(id)}, nil
}

func (q *fakeQueue) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	q.mu.Lock()
	n := min(int(params.MaxNumberOfMessages), len(q.pending))
	batch := q.pending[:n:n]
	q.pending = q.pending[n:]
	for _, m := range batch {
		q.inFlight[*m.ReceiptHandle] = m
	}
	q.mu.Unlock()

	if n == 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return &sqs.ReceiveMessageOutput{Messages: batch}, nil
}

func (q *fakeQueue) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.inFlight, *params.ReceiptHandle)
	return &sqs.DeleteMessageOutput{}, nil
}

func (q *fakeQueue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) + len(q.inFlight)
}

func TestNotificationService_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const queueURL = "https://sqs.us-east-1.amazonaws.com/123456789/product-notifications"

	queue := newFakeQueue()
	publisher := sqspkg.NewPublisher(queue, queueURL)
	productService := service.NewProductService(repository.NewProductRepository(memory.NewProductStore()), publisher)
	conf := &config.Config{}
	router := httpAPI.InitRouter(conf, gin.New(), controller.New(conf), controller.NewProductController(productService))

	send := func(method, target, body string) int {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusCreated, send(http.MethodPost, "/api/v1/products", `{"name":"Ming Vase","price":1200.5,"tag":"ceramics"}`))
	require.Equal(t, http.StatusOK, send(http.MethodPut, "/api/v1/products/1", `{"name":"Qing Vase","price":900,"tag":"ceramics"}`))
	require.Equal(t, http.StatusOK, send(http.MethodDelete, "/api/v1/products?name=Vase", ""))
	require.Equal(t, http.StatusNotFound, send(http.MethodDelete, "/api/v1/products/1", ""))

	var (
		mu       sync.Mutex
		received []model.ProductEvent
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := sqspkg.NewConsumer(queue, queueURL, func(_ context.Context, event model.ProductEvent) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)
		if len(received) == 3 {
			cancel()
		}
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not receive every notification")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 3)
	assert.Equal(t, model.ProductCreated, received[0].Action)
	assert.Equal(t, model.ProductUpdated, received[1].Action)
	assert.Equal(t, "Qing Vase", received[1].Name)
	assert.Equal(t, model.ProductDeleted, received[2].Action)
	assert.Equal(t, int64(1), received[2].ProductID)
	assert.Equal(t, "900.00", received[2].Price.StringFixed(2))
	assert.Eventually(t, func() bool { return queue.depth() == 0 }, time.Second, 10*time.Millisecond)
}
