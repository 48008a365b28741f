package fullsync

import (
	"github.com/spacemeshos/go-scale"

	"github.com/yku12cn/cpisync/item"
)

// ItemBatchMessage carries a full collection of items; it is the only
// exchange-phase message of the fullsync protocol.
type ItemBatchMessage struct {
	Items item.List
}

// EncodeScale implements scale codec interface.
func (m *ItemBatchMessage) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeStructSlice(enc, []item.Item(m.Items))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (m *ItemBatchMessage) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeStructSlice[item.Item](dec)
		if err != nil {
			return total, err
		}
		total += n
		m.Items = field
	}
	return total, nil
}
