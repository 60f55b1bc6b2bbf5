package fibonacci

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory creates and caches calculators by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// MustGet is like Get but panics on unknown names.
	MustGet(name string) Calculator
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every registered calculator keyed by name.
	GetAll() map[string]Calculator
	// Register adds a calculator constructor under name.
	Register(name string, creator func() coreCalculator) error
}

// builtinCreators are registered by NewDefaultFactory. Optional backends add
// themselves from init functions guarded by build tags.
var builtinCreators = map[string]func() coreCalculator{
	"memo":      func() coreCalculator { return MemoizedRecursion{} },
	"iterative": func() coreCalculator { return IterativeBottomUp{} },
}

// DefaultFactory is the thread-safe CalculatorFactory implementation.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[string]func() coreCalculator
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory with the built-in algorithms.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[string]func() coreCalculator, len(builtinCreators)),
		calculators: make(map[string]Calculator),
	}
	for name, creator := range builtinCreators {
		f.creators[name] = creator
	}
	return f
}

// Register implements CalculatorFactory.
func (f *DefaultFactory) Register(name string, creator func() coreCalculator) error {
	if name == "" || creator == nil {
		return fmt.Errorf("invalid registration for calculator %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.creators[name]; exists {
		return fmt.Errorf("calculator %q already registered", name)
	}
	f.creators[name] = creator
	return nil
}

// Get implements CalculatorFactory. Calculators are created lazily and cached.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	calc, ok := f.calculators[name]
	f.mu.RUnlock()
	if ok {
		return calc, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.calculators[name]; ok {
		return calc, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator: %q", name)
	}
	calc = NewCalculator(creator())
	f.calculators[name] = calc
	return calc, nil
}

// MustGet implements CalculatorFactory.
func (f *DefaultFactory) MustGet(name string) Calculator {
	calc, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return calc
}

// List implements CalculatorFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements CalculatorFactory.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	all := make(map[string]Calculator)
	for _, name := range f.List() {
		if calc, err := f.Get(name); err == nil {
			all[name] = calc
		}
	}
	return all
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide factory. Calculators hold no state
// between calls, so sharing them is safe.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
