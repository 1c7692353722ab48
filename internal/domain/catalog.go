package domain

type DifficultyTier string

const (
	DifficultyEasy     DifficultyTier = "easy"
	DifficultyModerate DifficultyTier = "moderate"
	DifficultyExtreme  DifficultyTier = "extreme"
)

type TourOption struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	DurationHours  int            `json:"duration_hours"`
	PricePerPerson Money          `json:"price_per_person"`
	Difficulty     DifficultyTier `json:"difficulty"`
}

type VehicleOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PowerClass string `json:"power_class"`
	// Per-participant surcharge on top of the tour price. Zero for the
	// baseline vehicle.
	Surcharge Money `json:"surcharge"`
}

type ExtraOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Description string `json:"description"`
}

// Catalog is the read-only reference data a checkout session prices against.
// It is built once at startup, safe for concurrent reads and never mutated
// afterwards.
type Catalog struct {
	tours           []TourOption
	vehicles        []VehicleOption
	extras          []ExtraOption
	tourIndex       map[string]TourOption
	vehicleIndex    map[string]VehicleOption
	extraIndex      map[string]ExtraOption
	baselineVehicle string
}

func NewCatalog(tours []TourOption, vehicles []VehicleOption, extras []ExtraOption, baselineVehicleID string) *Catalog {
	c := &Catalog{
		tours:           append([]TourOption(nil), tours...),
		vehicles:        append([]VehicleOption(nil), vehicles...),
		extras:          append([]ExtraOption(nil), extras...),
		tourIndex:       make(map[string]TourOption, len(tours)),
		vehicleIndex:    make(map[string]VehicleOption, len(vehicles)),
		extraIndex:      make(map[string]ExtraOption, len(extras)),
		baselineVehicle: baselineVehicleID,
	}
	for _, t := range tours {
		c.tourIndex[t.ID] = t
	}
	for _, v := range vehicles {
		c.vehicleIndex[v.ID] = v
	}
	for _, e := range extras {
		c.extraIndex[e.ID] = e
	}
	return c
}

func (c *Catalog) Tours() []TourOption       { return append([]TourOption(nil), c.tours...) }
func (c *Catalog) Vehicles() []VehicleOption { return append([]VehicleOption(nil), c.vehicles...) }
func (c *Catalog) Extras() []ExtraOption     { return append([]ExtraOption(nil), c.extras...) }

func (c *Catalog) TourByID(id string) (TourOption, bool) {
	t, ok := c.tourIndex[id]
	return t, ok
}

func (c *Catalog) VehicleByID(id string) (VehicleOption, bool) {
	v, ok := c.vehicleIndex[id]
	return v, ok
}

func (c *Catalog) ExtraByID(id string) (ExtraOption, bool) {
	e, ok := c.extraIndex[id]
	return e, ok
}

// BaselineVehicleID is the vehicle a fresh selection starts with.
func (c *Catalog) BaselineVehicleID() string { return c.baselineVehicle }
