// Package names produces human-readable random titles for new notebooks,
// in the style of chemical compound names.
package names

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var cations = []string{
	"aluminum", "ammonium", "barium", "beryllium", "calcium", "cesium",
	"chromium", "cobalt", "copper", "gallium", "hydrogen", "iron",
	"lithium", "magnesium", "manganese", "mercury", "nickel", "potassium",
	"rubidium", "silver", "sodium", "strontium", "tin", "titanium",
	"tungsten", "vanadium", "zinc", "zirconium",
}

var anions = []string{
	"acetate", "arsenide", "bicarbonate", "bromide", "carbonate",
	"chlorate", "chloride", "chromate", "citrate", "cyanide", "fluoride",
	"hydroxide", "iodide", "nitrate", "nitride", "oxalate", "oxide",
	"perchlorate", "permanganate", "peroxide", "phosphate", "phosphide",
	"silicate", "sulfate", "sulfide", "sulfite", "tartrate", "thiocyanate",
}

// Generator picks compound names from a caller-supplied random source so
// tests can pin the sequence.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

var defaultGenerator = NewGenerator(time.Now().UnixNano())

func (g *Generator) RandomCompound() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%s %s", cations[g.rng.Intn(len(cations))], anions[g.rng.Intn(len(anions))])
}

// RandomCompound returns a title like "strontium oxalate".
func RandomCompound() string {
	return defaultGenerator.RandomCompound()
}
