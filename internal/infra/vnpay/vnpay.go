// Package vnpay builds signed payment URLs for the VNPay gateway and verifies
// the signed query strings it sends back.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"fastfood/internal/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"

	// 成功コード
	SuccessCode = "00"

	version   = "2.1.0"
	command   = "pay"
	currency  = "VND"
	orderType = "other"
	locale    = "vn"
)

// ゲートウェイの時刻はUTC+7
var gatewayZone = time.FixedZone("ICT", 7*60*60)

var ErrMissingParam = errors.New("vnpay: missing parameter")

type Client struct {
	cfg       config.VNPayConfig
	now       func() time.Time
	newTxnRef func() string
}

type Option func(*Client)

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithTxnRef(gen func() string) Option {
	return func(c *Client) { c.newTxnRef = gen }
}

func NewClient(cfg config.VNPayConfig, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		now: time.Now,
		newTxnRef: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// 決済ページへのURLを作る。DBには何も書かない
func (c *Client) BuildPaymentURL(amount decimal.Decimal, orderInfo, clientIP string) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("vnpay: amount must be positive")
	}
	if clientIP == "" {
		clientIP = "127.0.0.1"
	}

	params := map[string]string{
		"vnp_Version":    version,
		"vnp_Command":    command,
		"vnp_TmnCode":    c.cfg.TmnCode,
		"vnp_Amount":     ScaleAmount(amount),
		"vnp_CurrCode":   currency,
		"vnp_TxnRef":     c.newTxnRef(),
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  orderType,
		"vnp_Locale":     locale,
		"vnp_ReturnUrl":  c.cfg.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": c.now().In(gatewayZone).Format("20060102150405"),
	}

	query := canonicalQuery(params)
	return c.cfg.URL + "?" + query + "&" + ParamSecureHash + "=" + Sign(c.cfg.HashSecret, query), nil
}

// 署名が一致するときだけtrue
func (c *Client) VerifyCallback(params map[string]string) bool {
	given, ok := params[ParamSecureHash]
	if !ok || given == "" {
		return false
	}
	//署名に含まれないパラメータが混じっていたら通さない
	if !signedOnly(params) {
		return false
	}

	expected := Sign(c.cfg.HashSecret, canonicalQuery(params))
	return hmac.Equal([]byte(strings.ToLower(given)), []byte(expected))
}

// 署名キー以外はすべて値のあるvnp_パラメータであること
func signedOnly(params map[string]string) bool {
	for k, v := range params {
		if k == ParamSecureHash || k == ParamSecureHashType {
			continue
		}
		if !strings.HasPrefix(k, "vnp_") || v == "" {
			return false
		}
	}
	return true
}

// HMAC-SHA512（小文字hex）
func Sign(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// vnp_で始まるキーを署名対象にし、キー順に key=value を & で繋ぐ
func canonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if !strings.HasPrefix(k, "vnp_") || k == ParamSecureHash || k == ParamSecureHashType {
			continue
		}
		if params[k] == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// ゲートウェイは金額を100倍の整数で扱う
func ScaleAmount(amount decimal.Decimal) string {
	return amount.Mul(decimal.NewFromInt(100)).Truncate(0).String()
}

func UnscaleAmount(raw string) (decimal.Decimal, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("vnpay: invalid amount %q: %w", raw, err)
	}
	return decimal.New(n, -2), nil
}

// 検証済みコールバックから取り出す値
type Callback struct {
	TxnRef        string
	OrderInfo     string
	TransactionNo string
	Amount        decimal.Decimal
	Success       bool
}

// 署名検証の後に呼ぶ
func ParseCallback(params map[string]string) (Callback, error) {
	orderInfo := params["vnp_OrderInfo"]
	if orderInfo == "" {
		return Callback{}, fmt.Errorf("%w: vnp_OrderInfo", ErrMissingParam)
	}
	rawAmount := params["vnp_Amount"]
	if rawAmount == "" {
		return Callback{}, fmt.Errorf("%w: vnp_Amount", ErrMissingParam)
	}
	amount, err := UnscaleAmount(rawAmount)
	if err != nil {
		return Callback{}, err
	}

	status, ok := params["vnp_TransactionStatus"]
	if !ok {
		status = params["vnp_ResponseCode"]
	}

	return Callback{
		TxnRef:        params["vnp_TxnRef"],
		OrderInfo:     orderInfo,
		TransactionNo: params["vnp_TransactionNo"],
		Amount:        amount,
		Success:       status == SuccessCode,
	}, nil
}
