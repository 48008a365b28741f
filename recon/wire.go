package recon

import (
	"github.com/spacemeshos/go-scale"
)

// maxParamsSize bounds the strategy-specific parameter blob exchanged during
// negotiation.
const maxParamsSize = 1 << 16

// ParamsMessage opens every session: the initiator transmits its protocol
// identity, its strategy-specific tunables and whether it expects an
// acknowledgment.
type ParamsMessage struct {
	Protocol uint16
	Params   []byte
	OneWay   bool
}

// EncodeScale implements scale codec interface.
func (m *ParamsMessage) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact16(enc, m.Protocol)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, m.Params, maxParamsSize)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeBool(enc, m.OneWay)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (m *ParamsMessage) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact16(dec)
		if err != nil {
			return total, err
		}
		total += n
		m.Protocol = field
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, maxParamsSize)
		if err != nil {
			return total, err
		}
		total += n
		m.Params = field
	}
	{
		field, n, err := scale.DecodeBool(dec)
		if err != nil {
			return total, err
		}
		total += n
		m.OneWay = field
	}
	return total, nil
}

// AckMessage is the responder's answer to a ParamsMessage, skipped in
// one-way mode. Protocol carries the responder's identity so that a rejected
// initiator can report what the peer actually runs.
type AckMessage struct {
	Match    bool
	Protocol uint16
}

// EncodeScale implements scale codec interface.
func (m *AckMessage) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeBool(enc, m.Match)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact16(enc, m.Protocol)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (m *AckMessage) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeBool(dec)
		if err != nil {
			return total, err
		}
		total += n
		m.Match = field
	}
	{
		field, n, err := scale.DecodeCompact16(dec)
		if err != nil {
			return total, err
		}
		total += n
		m.Protocol = field
	}
	return total, nil
}
