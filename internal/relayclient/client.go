// Package relayclient implements tss.Network on top of the relay
// service's HTTP surface (spec.md section 6.1): broadcasts and
// point-to-point sends both become opaque envelopes appended to a room,
// and Recv replays the room's SSE stream looking for the next envelope
// addressed to this party.
package relayclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/shardwallet/shardwallet/internal/tss"
)

// envelope is the wire format every relay message carries. Round and
// From/To let many logically distinct protocol messages share one flat,
// ordered room log without the relay itself understanding the protocol.
type envelope struct {
	Round int            `json:"round"`
	From  tss.PartyIndex `json:"from"`
	To    *tss.PartyIndex `json:"to,omitempty"` // nil means broadcast
	Body  []byte         `json:"body"`
}

// Room is a relay-backed tss.Network bound to one room for the lifetime
// of one ceremony (keygen, aux-info, or signing).
type Room struct {
	baseURL string
	roomID  string
	me      tss.PartyIndex
	client  *http.Client

	mu      sync.Mutex
	pending map[int][]envelope // messages already pulled off the stream but not yet consumed, by round
	nextID  uint32
	stream  *eventStream
}

// NewRoom opens (lazily; no network call happens here) a client for the
// named room on the relay at baseURL.
func NewRoom(baseURL, roomID string, me tss.PartyIndex) *Room {
	return &Room{
		baseURL: strings.TrimRight(baseURL, "/"),
		roomID:  roomID,
		me:      me,
		client:  http.DefaultClient,
		pending: make(map[int][]envelope),
	}
}

func (r *Room) Index() tss.PartyIndex { return r.me }

func (r *Room) Broadcast(ctx context.Context, round int, payload []byte) error {
	return r.publish(ctx, envelope{Round: round, From: r.me, To: nil, Body: payload})
}

func (r *Room) SendTo(ctx context.Context, round int, to tss.PartyIndex, payload []byte) error {
	return r.publish(ctx, envelope{Round: round, From: r.me, To: &to, Body: payload})
}

func (r *Room) publish(ctx context.Context, env envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/rooms/%s/broadcast", r.baseURL, r.roomID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relayclient: broadcast to room %s: status %d", r.roomID, resp.StatusCode)
	}
	return nil
}

// IssueUniqueIdx calls the relay's issue_unique_idx endpoint and returns
// the index it issued. The participant server does not call it; its
// party index comes from static configuration.
func (r *Room) IssueUniqueIdx(ctx context.Context) (uint32, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/rooms/%s/issue_unique_idx", r.baseURL, r.roomID), nil)
	if err != nil {
		return 0, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("relayclient: issue_unique_idx room %s: status %d", r.roomID, resp.StatusCode)
	}
	var out struct {
		UniqueIdx uint32 `json:"unique_idx"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.UniqueIdx, nil
}

// Recv blocks until an envelope addressed to this party (broadcast or
// direct) for the given round arrives, skipping envelopes this party
// itself sent.
func (r *Room) Recv(ctx context.Context, round int) (tss.PartyIndex, []byte, error) {
	for {
		r.mu.Lock()
		queue := r.pending[round]
		if len(queue) > 0 {
			env := queue[0]
			r.pending[round] = queue[1:]
			r.mu.Unlock()
			return env.From, env.Body, nil
		}
		if r.stream == nil {
			r.stream = newEventStream(ctx, r.client, fmt.Sprintf("%s/rooms/%s/subscribe", r.baseURL, r.roomID), r.nextID)
		}
		stream := r.stream
		r.mu.Unlock()

		data, id, err := stream.next(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("relayclient: room %s stream: %w", r.roomID, err)
		}

		r.mu.Lock()
		r.nextID = id + 1
		var env envelope
		if jsonErr := json.Unmarshal(data, &env); jsonErr != nil {
			r.mu.Unlock()
			return 0, nil, fmt.Errorf("relayclient: decoding envelope: %w", jsonErr)
		}
		if env.From != r.me && (env.To == nil || *env.To == r.me) {
			r.pending[env.Round] = append(r.pending[env.Round], env)
		}
		r.mu.Unlock()
	}
}

// eventStream incrementally parses an SSE response body into (data, id)
// pairs, matching the `event: new-message\nid: <n>\ndata: <bytes>\n\n`
// framing the relay emits (spec.md section 6.1).
type eventStream struct {
	once sync.Once
	resp *http.Response
	r    *bufio.Reader
	err  error
}

func newEventStream(ctx context.Context, client *http.Client, url string, lastID uint32) *eventStream {
	s := &eventStream{}
	go func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			s.err = err
			return
		}
		if lastID > 0 {
			req.Header.Set("Last-Event-ID", strconv.FormatUint(uint64(lastID-1), 10))
		}
		resp, err := client.Do(req)
		if err != nil {
			s.err = err
			return
		}
		s.resp = resp
		s.r = bufio.NewReader(resp.Body)
	}()
	return s
}

func (s *eventStream) next(ctx context.Context) ([]byte, uint32, error) {
	for s.r == nil {
		if s.err != nil {
			return nil, 0, s.err
		}
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}
	}

	var id uint64
	var data []byte
	for {
		line, err := s.r.ReadString('\n')
		if err != nil {
			return nil, 0, err
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "id: "):
			id, err = strconv.ParseUint(strings.TrimPrefix(line, "id: "), 10, 32)
			if err != nil {
				return nil, 0, err
			}
		case strings.HasPrefix(line, "data: "):
			data = []byte(strings.TrimPrefix(line, "data: "))
		case line == "":
			if data != nil {
				return data, uint32(id), nil
			}
		}
	}
}

func (s *eventStream) close() {
	s.once.Do(func() {
		if s.resp != nil {
			s.resp.Body.Close()
		}
	})
}
