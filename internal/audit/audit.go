package audit

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/idudko/go-autoclean/pkg/autoclean"
)

// SignatureHeader carries the HMAC-SHA256 of the request body when a key is set.
const SignatureHeader = "HashSHA256"

// Record is the serialized form of an autoclean.Event.
type Record struct {
	Timestamp int64  `json:"ts"`
	Kind      string `json:"kind"`
	Target    string `json:"target"`
	Owner     string `json:"owner"`
	Member    string `json:"member"`
	Partition string `json:"partition"`
	Error     string `json:"error,omitempty"`
}

// NewRecord converts event into a Record stamped with the current time.
func NewRecord(event autoclean.Event) Record {
	r := Record{
		Timestamp: time.Now().Unix(),
		Kind:      event.Kind.String(),
		Target:    typeString(event.Target),
		Owner:     typeString(event.Owner),
		Member:    event.Member,
		Partition: event.Partition.String(),
	}
	if event.Err != nil {
		r.Error = event.Err.Error()
	}
	return r
}

// FileObserver appends one JSON line per event to a file.
type FileObserver struct {
	mu       sync.Mutex
	filePath string
}

func NewFileObserver(filePath string) *FileObserver {
	return &FileObserver{
		filePath: filePath,
	}
}

func (o *FileObserver) Notify(event autoclean.Event) {
	data, err := json.Marshal(NewRecord(event))
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal audit record")
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	file, err := os.OpenFile(o.filePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Error().Err(err).Str("path", o.filePath).Msg("failed to open audit file")
		return
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, string(data)); err != nil {
		log.Error().Err(err).Str("path", o.filePath).Msg("failed to write audit file")
	}
}

// HTTPObserver posts every event as JSON to an endpoint, retrying failed
// deliveries.
type HTTPObserver struct {
	url    string
	key    string
	client *retryablehttp.Client
}

// HTTPOption configures an HTTPObserver.
type HTTPOption func(*HTTPObserver)

// WithSigningKey signs request bodies with key.
func WithSigningKey(key string) HTTPOption {
	return func(o *HTTPObserver) {
		o.key = key
	}
}

// WithRetries sets the retry budget and the bounds of the backoff between attempts.
func WithRetries(max int, waitMin, waitMax time.Duration) HTTPOption {
	return func(o *HTTPObserver) {
		o.client.RetryMax = max
		o.client.RetryWaitMin = waitMin
		o.client.RetryWaitMax = waitMax
	}
}

func NewHTTPObserver(url string, opts ...HTTPOption) *HTTPObserver {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = 5 * time.Second

	o := &HTTPObserver{url: url, client: client}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *HTTPObserver) Notify(event autoclean.Event) {
	if err := o.Send(NewRecord(event)); err != nil {
		log.Error().Err(err).Str("url", o.url).Msg("failed to deliver audit record")
	}
}

// Send delivers a single record and reports the final outcome.
func (o *HTTPObserver) Send(record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, o.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build audit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.key != "" {
		req.Header.Set(SignatureHeader, Sign(data, o.key))
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("send audit record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("audit server returned status %d", resp.StatusCode)
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of data under key.
func Sign(data []byte, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether signature is the HMAC of data under key.
func Verify(data []byte, key, signature string) bool {
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(data, key)), []byte(signature))
}

// Subject fans events out to attached observers. It implements
// autoclean.Observer and is safe for concurrent use.
type Subject struct {
	mu        sync.RWMutex
	observers []*attachment
}

type attachment struct {
	observer autoclean.Observer
}

func NewSubject() *Subject {
	return &Subject{
		observers: make([]*attachment, 0),
	}
}

// Attach adds observer and returns a function that detaches this attachment.
// The function works for observers of any type, including ObserverFunc values
// that Detach cannot compare.
func (s *Subject) Attach(observer autoclean.Observer) (detach func()) {
	a := &attachment{observer: observer}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, a)

	return func() {
		s.remove(func(x *attachment) bool { return x == a })
	}
}

// Detach removes the first attachment equal to observer. Observers of
// uncomparable types (funcs, maps, slices) never match; use the function
// returned by Attach for those.
func (s *Subject) Detach(observer autoclean.Observer) {
	if observer == nil || !reflect.TypeOf(observer).Comparable() {
		return
	}
	s.remove(func(x *attachment) bool {
		return reflect.TypeOf(x.observer) == reflect.TypeOf(observer) && x.observer == observer
	})
}

func (s *Subject) remove(match func(*attachment) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.observers {
		if match(a) {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached observers.
func (s *Subject) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

func (s *Subject) Notify(event autoclean.Event) {
	s.mu.RLock()
	observers := append([]*attachment(nil), s.observers...)
	s.mu.RUnlock()

	for _, a := range observers {
		a.observer.Notify(event)
	}
}

func typeString(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
