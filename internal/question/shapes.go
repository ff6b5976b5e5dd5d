package question

var shapeNames = []string{"rectangle", "square", "triangle", "circle", "parallelogram"}

var shapeProperties = map[string]string{
	"rectangle":     "4 straight sides, opposite sides equal",
	"square":        "4 straight sides, all 4 sides equal",
	"triangle":      "3 straight sides, 3 corners",
	"circle":        "made of one curved line, no corners",
	"parallelogram": "opposite sides parallel and equal",
}

var shapeScenes = []struct {
	scene string
	shape string
	glyph string
}{
	{"🏠 What shape is the window in Ming's house?", "rectangle", "▭"},
	{"📱 What shape is a phone screen?", "rectangle", "▭"},
	{"🎪 What shape is the top of the circus tent?", "triangle", "🔺"},
	{"🍕 What shape is a pizza?", "circle", "⭕"},
	{"📚 What shape is a textbook cover?", "rectangle", "▭"},
	{"🎯 What shape is a dartboard?", "circle", "⭕"},
	{"🏁 What shape is each cell of a checkered flag?", "square", "⬜"},
	{"🚩 What shape is a pennant flag?", "triangle", "🔺"},
	{"🪙 What shape is a coin?", "circle", "⭕"},
	{"📄 What shape is a sheet of A4 paper?", "rectangle", "▭"},
	{"🎲 What shape is each face of a die?", "square", "⬜"},
	{"⚠️ What shape is a warning sign?", "triangle", "🔺"},
}

var shapeFeatures = []fixedItem{
	{"🔍 What is special about a square ⬜?", "all 4 sides are equal", []string{"only 2 sides are equal", "it has 5 sides", "it has no corners"}, "A square has all 4 sides equal"},
	{"🔍 What is special about a rectangle ▭?", "opposite sides are equal", []string{"all 4 sides are equal", "it has only 1 side", "it is round"}, "A rectangle has opposite sides equal"},
	{"🔍 What is special about a triangle 🔺?", "it has 3 corners", []string{"it has 4 corners", "it has no corners", "it has 5 corners"}, "A triangle has 3 corners"},
	{"🔍 What is special about a circle ⭕?", "it has no corners", []string{"it has 3 corners", "it has 4 corners", "it has straight sides"}, "A circle has no corners"},
	{"🔍 What is special about a parallelogram ▱?", "opposite sides are parallel", []string{"no sides are parallel", "it has only 1 side", "it is round"}, "A parallelogram has opposite sides parallel"},
}

var tangramItems = []fixedItem{
	{"🧩 In a tangram, what can two small triangles make?", "a parallelogram", []string{"a circle", "a pentagon", "nothing"}, "Two equal small triangles can make a parallelogram or a bigger triangle"},
	{"🔷 What can 4 equal small squares make?", "a big square", []string{"a circle", "a triangle", "a pentagon"}, "4 equal small squares make one big square"},
	{"🎯 How many triangles are in a tangram?", "5", []string{"3", "7", "4"}, "A tangram has 5 triangles: 2 large, 1 medium, 2 small"},
	{"🧩 Which is the largest piece of a tangram?", "a large triangle", []string{"the square", "the parallelogram", "a small triangle"}, "The 2 large triangles are the biggest tangram pieces"},
	{"🔺 Can a tangram make animal shapes like a rabbit, a fish or a bird?", "yes, many animals", []string{"no, never", "only circles", "only squares"}, "Tangram pieces can be arranged into many animal shapes"},
}

var shapeApplications = []fixedItem{
	{"🏗️ Which tile shape can cover a floor with no gaps?", "square", []string{"circle", "five-pointed star", "heart"}, "Squares fit together with no gaps"},
	{"🎨 Draw a shape with 4 equal sides and 4 equal corners. What is it?", "square", []string{"rectangle", "triangle", "circle"}, "A square has 4 equal sides and 4 equal corners"},
	{"🚗 Why are wheels round?", "they roll smoothly", []string{"they look nice", "they use less material", "they are easy to make"}, "The centre of a round wheel stays at the same height, so it rolls smoothly"},
	{"📐 Which four-sided shape always has equal diagonals?", "rectangle (including square)", []string{"general parallelogram", "trapezoid", "any quadrilateral"}, "The diagonals of a rectangle (including a square) are always equal"},
	{"🔺 How many sides does a triangle have?", "3", []string{"4", "5", "6"}, "A triangle has 3 sides"},
	{"📦 What flat shape do you get when you unfold a box?", "several rectangles joined", []string{"one rectangle", "a circle", "a triangle"}, "An unfolded box is 6 rectangles joined together"},
	{"⚽ Which object rolls the furthest?", "sphere", []string{"cylinder", "cube", "cone"}, "A sphere has no edges, so it keeps rolling"},
	{"🎪 What shape is the floor of a tent usually?", "a circle or a polygon", []string{"a triangle", "only a square", "always a rectangle"}, "Tent floors come in many shapes: circles, squares, rectangles"},
}

// generateShapes covers identification, features, tangram composition and
// real-world application.
func generateShapes(g *Generator) {
	for i, sc := range shapeScenes {
		g.emit("shape_identify", i+1, func() (Question, bool) {
			wrong := make([]string, 0, len(shapeNames)-1)
			for _, s := range shapeNames {
				if s != sc.shape {
					wrong = append(wrong, s)
				}
			}
			options, answer, ok := textChoices(g.rng, sc.shape, wrong[:3])
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        sc.scene + " " + sc.glyph,
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   "It is a " + sc.shape + ": " + shapeProperties[sc.shape],
				Difficulty:    DifficultyEasy,
			}, true
		})
	}

	g.emitFixed("shape_feature", 12, DifficultyMedium, shapeFeatures)
	g.emitFixed("shape_tangram", 13, DifficultyMedium, tangramItems)
	g.emitFixed("shape_application", 13, DifficultyHard, shapeApplications)
}
