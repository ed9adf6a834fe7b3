package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
)

// Отправляет подписанное уведомление шлюза, как это делает настоящий шлюз.
// Повторный запуск с теми же флагами проверяет обработку дублей.
func main() {
	var (
		target  = flag.String("url", "http://localhost:8080/webhooks/acacia", "webhook endpoint")
		secret  = flag.String("secret", "", "gateway secret")
		ref     = flag.String("ref", "", "order reference, SHR-<token> or ORD-<number>")
		money   = flag.String("money", "", "paid amount, e.g. 100.00")
		status  = flag.String("status", "TRADE_SUCCESS", "trade status")
		pid     = flag.String("pid", "1000", "merchant id")
		method  = flag.String("type", "alipay", "payment method")
		tradeNo = flag.String("trade-no", "", "gateway trade number, random when empty")
		repeat  = flag.Int("repeat", 1, "how many times to send the same notification")
	)
	flag.Parse()

	if *secret == "" || *ref == "" || *money == "" {
		flag.Usage()
		log.Fatal("secret, ref and money are required")
	}
	if *tradeNo == "" {
		*tradeNo = fmt.Sprintf("T%d", time.Now().UnixNano())
	}

	fields := map[string]string{
		gateway.FieldPID:         *pid,
		gateway.FieldType:        *method,
		gateway.FieldOutTradeNo:  *ref,
		gateway.FieldTradeNo:     *tradeNo,
		gateway.FieldTradeStatus: *status,
		gateway.FieldName:        "Order",
		gateway.FieldMoney:       *money,
		gateway.FieldSignType:    gateway.SignTypeMD5,
	}
	fields[gateway.FieldSign] = gateway.Sign(fields, *secret)

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	for i := range *repeat {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, *target, strings.NewReader(form.Encode()))
		if err != nil {
			log.Fatal(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("attempt %d: %v", i+1, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		log.Printf("attempt %d: %s %s", i+1, resp.Status, strings.TrimSpace(string(body)))
	}
}
