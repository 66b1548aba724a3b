package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/recipeflow/internal/domain"
)

// File layout. Keys follow the recipe data format used by the web app the
// catalog was first written for, so JSON exports parse unchanged (JSON is
// valid YAML).
type yamlCatalog struct {
	Cuisines []yamlCuisine `yaml:"cuisines"`
	Recipes  []yamlRecipe  `yaml:"recipes"`
}

type yamlCuisine struct {
	Region     string          `yaml:"region"`
	Subregions []yamlSubregion `yaml:"subregions"`
}

type yamlSubregion struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

type yamlRecipe struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Cuisine struct {
		Region    string `yaml:"region"`
		Subregion string `yaml:"subregion"`
	} `yaml:"cuisine"`
	HeroImage     string           `yaml:"hero_image"`
	TotalTimeMin  int              `yaml:"total_time_min"`
	Difficulty    string           `yaml:"difficulty"`
	Serves        int              `yaml:"serves"`
	Prerequisites []string         `yaml:"prerequisites"`
	Diet          []string         `yaml:"diet"`
	MoodTags      []string         `yaml:"mood_tags"`
	Description   string           `yaml:"description"`
	Steps         []yamlStep       `yaml:"steps"`
	Ingredients   []yamlIngredient `yaml:"ingredients"`
	Nutrition     struct {
		Calories int    `yaml:"calories"`
		Protein  string `yaml:"protein"`
		Carbs    string `yaml:"carbs"`
		Fat      string `yaml:"fat"`
	} `yaml:"nutritional_info"`
}

type yamlStep struct {
	Index             int      `yaml:"index"`
	Emoji             string   `yaml:"emoji"`
	Title             string   `yaml:"title"`
	Text              string   `yaml:"text"`
	Image             string   `yaml:"image"`
	TimerMin          int      `yaml:"timer_min"`
	LinkedIngredients []string `yaml:"linked_ingredients"`
	Youtube           string   `yaml:"youtube"`
}

type yamlIngredient struct {
	Name          string   `yaml:"name"`
	Qty           quantity `yaml:"qty"`
	Unit          string   `yaml:"unit"`
	Substitutions []string `yaml:"substitutions"`
}

// quantity accepts either a number or a string ("to taste").
type quantity string

func (q *quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: qty must be a scalar", node.Line)
	}
	*q = quantity(node.Value)
	return nil
}

// Parse decodes a YAML or JSON catalog and validates it. Recipes keep the
// order they have in the file.
func Parse(data []byte) ([]domain.Recipe, []domain.CuisineGroup, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: parse: %v", domain.ErrInvalidCatalog, err)
	}

	recipes := make([]domain.Recipe, 0, len(raw.Recipes))
	for _, r := range raw.Recipes {
		recipes = append(recipes, r.toDomain())
	}
	if err := validate(recipes); err != nil {
		return nil, nil, err
	}

	cuisines := make([]domain.CuisineGroup, 0, len(raw.Cuisines))
	for _, c := range raw.Cuisines {
		g := domain.CuisineGroup{Region: c.Region}
		for _, s := range c.Subregions {
			g.Subregions = append(g.Subregions, domain.Subregion{
				Name:        s.Name,
				Description: s.Description,
				Color:       s.Color,
			})
		}
		cuisines = append(cuisines, g)
	}
	if len(cuisines) == 0 {
		cuisines = deriveCuisines(recipes)
	}

	return recipes, cuisines, nil
}

func (r yamlRecipe) toDomain() domain.Recipe {
	out := domain.Recipe{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Cuisine:       domain.Cuisine{Region: r.Cuisine.Region, Subregion: r.Cuisine.Subregion},
		HeroImage:     r.HeroImage,
		Difficulty:    r.Difficulty,
		Serves:        r.Serves,
		TotalTimeMin:  r.TotalTimeMin,
		Prerequisites: r.Prerequisites,
		Diet:          r.Diet,
		MoodTags:      r.MoodTags,
		Nutrition: domain.Nutrition{
			Calories: r.Nutrition.Calories,
			Protein:  r.Nutrition.Protein,
			Carbs:    r.Nutrition.Carbs,
			Fat:      r.Nutrition.Fat,
		},
	}
	for _, s := range r.Steps {
		out.Steps = append(out.Steps, domain.Step{
			Index:             s.Index,
			Emoji:             s.Emoji,
			Title:             s.Title,
			Text:              s.Text,
			Image:             s.Image,
			TimerMin:          s.TimerMin,
			LinkedIngredients: s.LinkedIngredients,
			Video:             s.Youtube,
		})
	}
	for _, ing := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, domain.Ingredient{
			Name:          ing.Name,
			Qty:           string(ing.Qty),
			Unit:          ing.Unit,
			Substitutions: ing.Substitutions,
		})
	}
	return out
}

// validate enforces the record invariants the engine relies on: unique ids,
// step indices 1..n in declaration order, and non-negative timers.
func validate(recipes []domain.Recipe) error {
	seen := make(map[string]bool, len(recipes))
	for i, r := range recipes {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("%w: recipe #%d has no id", domain.ErrInvalidCatalog, i+1)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate recipe id %q", domain.ErrInvalidCatalog, r.ID)
		}
		seen[r.ID] = true

		if r.Cuisine.Subregion != "" && r.Cuisine.Region == "" {
			return fmt.Errorf("%w: recipe %q has a subregion without a region", domain.ErrInvalidCatalog, r.ID)
		}

		for j, s := range r.Steps {
			if s.Index != j+1 {
				return fmt.Errorf("%w: recipe %q step #%d has index %d", domain.ErrInvalidCatalog, r.ID, j+1, s.Index)
			}
			if s.TimerMin < 0 {
				return fmt.Errorf("%w: recipe %q step %d has negative timer", domain.ErrInvalidCatalog, r.ID, s.Index)
			}
		}
	}
	return nil
}

// deriveCuisines builds a cuisine tree from the recipes themselves when the
// file has no explicit cuisines section. Order follows first appearance.
func deriveCuisines(recipes []domain.Recipe) []domain.CuisineGroup {
	var groups []domain.CuisineGroup
	index := make(map[string]int)
	seenSub := make(map[domain.Cuisine]bool)

	for _, r := range recipes {
		c := r.Cuisine
		if c.Region == "" {
			continue
		}
		gi, ok := index[c.Region]
		if !ok {
			gi = len(groups)
			index[c.Region] = gi
			groups = append(groups, domain.CuisineGroup{Region: c.Region})
		}
		if c.Subregion == "" || seenSub[c] {
			continue
		}
		seenSub[c] = true
		groups[gi].Subregions = append(groups[gi].Subregions, domain.Subregion{Name: c.Subregion})
	}
	return groups
}
