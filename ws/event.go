package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/judgegodwins/chess-relay/chess"
)

// Payload is the wire envelope for every frame. Inbound fields are always
// strings; outbound fields may be any JSON value.
type Payload struct {
	Variant string `json:"variant"`
	Fields  []any  `json:"fields"`
}

const (
	VariantMsg        = "Msg"
	VariantConnect    = "Connect"
	VariantDisconnect = "Disconnect"
	VariantMoves      = "Moves"
	VariantBoard      = "Board"
	VariantSelect     = "Select"
	VariantMove       = "Move"
)

var (
	ErrUnknownVariant   = errors.New("unknown variant")
	ErrMalformedPayload = errors.New("malformed payload")
)

func NewPayload(variant string, fields ...any) Payload {
	if fields == nil {
		fields = []any{}
	}
	return Payload{Variant: variant, Fields: fields}
}

func MsgPayload(user, text string) Payload {
	return NewPayload(VariantMsg, user, text)
}

func ConnectPayload(user string) Payload {
	return NewPayload(VariantConnect, user)
}

func DisconnectPayload(user string) Payload {
	return NewPayload(VariantDisconnect, user)
}

func MovesPayload(cells []chess.Cell) Payload {
	if cells == nil {
		cells = []chess.Cell{}
	}
	return NewPayload(VariantMoves, cells)
}

func BoardPayload(state chess.State) Payload {
	return NewPayload(VariantBoard, state)
}

// MoveAckPayload tells the mover to clear its highlighted squares.
func MoveAckPayload() Payload {
	return NewPayload(VariantMove)
}

type inboundFrame struct {
	Variant string   `json:"variant"`
	Fields  []string `json:"fields"`
}

// DecodeAction parses one client frame into the action it requests.
func DecodeAction(data []byte, clientID string) (Action, error) {
	var frame inboundFrame

	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch frame.Variant {
	case VariantMsg:
		if len(frame.Fields) != 2 {
			return nil, fieldCountError(frame, 2)
		}
		return MsgAction{ClientID: clientID, User: frame.Fields[0], Text: frame.Fields[1]}, nil
	case VariantSelect:
		if len(frame.Fields) != 2 {
			return nil, fieldCountError(frame, 2)
		}
		cell, err := parseCell(frame.Fields[0], frame.Fields[1])
		if err != nil {
			return nil, err
		}
		return SelectAction{ClientID: clientID, Cell: cell}, nil
	case VariantMove:
		if len(frame.Fields) != 4 {
			return nil, fieldCountError(frame, 4)
		}
		from, err := parseCell(frame.Fields[0], frame.Fields[1])
		if err != nil {
			return nil, err
		}
		to, err := parseCell(frame.Fields[2], frame.Fields[3])
		if err != nil {
			return nil, err
		}
		return MoveAction{ClientID: clientID, From: from, To: to}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, frame.Variant)
}

func fieldCountError(frame inboundFrame, want int) error {
	return fmt.Errorf("%w: %s wants %d fields, got %d", ErrMalformedPayload, frame.Variant, want, len(frame.Fields))
}

func parseCell(row, col string) (chess.Cell, error) {
	r, err := strconv.Atoi(row)
	if err != nil {
		return chess.Cell{}, fmt.Errorf("%w: row %q", ErrMalformedPayload, row)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return chess.Cell{}, fmt.Errorf("%w: col %q", ErrMalformedPayload, col)
	}
	cell := chess.Cell{Row: r, Col: c}
	if !chess.InBounds(cell) {
		return chess.Cell{}, fmt.Errorf("%w: cell (%d,%d) off the board", ErrMalformedPayload, r, c)
	}
	return cell, nil
}
