package normalizer

import (
	"github.com/vttbridge/sheet-api/internal/entities/character"
	"github.com/vttbridge/sheet-api/internal/entities/sheet"
)

func (p *pass) extractInventory() {
	for _, node := range p.idx.All() {
		if node.Type != sheet.TypeItem || !node.Active() {
			continue
		}
		item := character.Item{
			Name:     node.Name,
			Quantity: 1,
			Equipped: node.Equipped,
			Attuned:  node.Attuned,
			Tags:     node.Tags,
		}
		if v, ok := node.Quantity.Number(); ok && v > 0 {
			item.Quantity = int(v)
		}
		if v, ok := node.Weight.Number(); ok {
			item.Weight = v
		}
		if v, ok := node.Value.Number(); ok {
			item.Value = v
		}
		p.out.Inventory = append(p.out.Inventory, item)
	}
}
