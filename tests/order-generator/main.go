package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/handler"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/middleware"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

var products = []struct {
	id    string
	name  string
	price string
}{
	{"p-mug", "Mug", "12.50"},
	{"p-teapot", "Teapot", "39.90"},
	{"p-tea", "Green tea 100g", "7.25"},
	{"p-kettle", "Kettle", "54.00"},
}

func randomString(n int) string {
	letters := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateRandomOrder(userID string) handler.Order {
	count := rand.Intn(len(products)) + 1
	items := make([]handler.OrderItem, 0, count)
	subtotal := decimal.Zero
	for i, idx := range rand.Perm(len(products))[:count] {
		p := products[idx]
		qty := rand.Intn(3) + 1
		price := decimal.RequireFromString(p.price)
		items = append(items, handler.OrderItem{
			ID:          fmt.Sprintf("item-%d-%s", i, randomString(6)),
			ProductID:   p.id,
			ProductName: p.name,
			Quantity:    qty,
			UnitPrice:   price,
		})
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	tax := subtotal.Mul(decimal.RequireFromString("0.08")).Round(2)
	shipping := decimal.RequireFromString("4.99")

	return handler.Order{
		ID:            uuid.NewString(),
		OrderNumber:   "SO-" + randomString(8),
		UserID:        userID,
		Status:        "pending",
		PaymentStatus: "pending",
		Subtotal:      subtotal,
		Tax:           tax,
		Shipping:      shipping,
		Total:         subtotal.Add(tax).Add(shipping),
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}
}

func main() {
	godotenv.Load()
	conf := config.New()

	writer := &kafka.Writer{
		Addr:  kafka.TCP(conf.Kafka.Brokers...),
		Topic: conf.Kafka.OrdersTopic,
	}
	defer writer.Close()

	// заказы создаются от имени одного пользователя, токен нужен чтобы делиться ими
	userID := "user-" + randomString(5)
	if conf.Auth.JWTSecret != "" {
		token, err := middleware.IssueToken(conf.Auth.JWTSecret, userID, "", 24*time.Hour)
		if err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}
		log.Printf("owner %s, bearer token: %s", userID, token)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			order := generateRandomOrder(userID)
			data, _ := json.Marshal(order)
			if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(order.ID), Value: data}); err != nil {
				log.Println("failed to write order:", err)
				continue
			}
			log.Println("order generated", order.ID, order.OrderNumber, order.Total.StringFixed(2))
		case <-ctx.Done():
			return
		}
	}
}
