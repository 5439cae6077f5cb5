// sprites10k spawns 10,000 sprites that rotate, scale, fade, and bounce around
// the screen simultaneously, all drawn from one batch mesh. Every second a
// slice of them is removed and respawned, and another slice is hidden, so
// slot reuse and partial syncs are exercised alongside the per-frame
// position and color pushes.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/spritebatch"
	"github.com/tanema/gween/ease"
)

const (
	screenW  = 1280
	screenH  = 720
	count    = 10_000
	dotSize  = 32
	churn    = 200 // sprites respawned per second
	hideStep = 500 // sprites toggled hidden per second
)

type sprite struct {
	tr         *spritebatch.Transform
	dx, dy     float64
	rotSpeed   float64
	scaleSpeed float64
	scaleBase  float64
	scaleAmp   float64
	alphaSpeed float64
	phase      float64
	tint       spritebatch.Color
	popUntil   float64 // scale is tween-driven until this time
}

type game struct {
	batch   *spritebatch.Batch
	mesh    *spritebatch.Mesh
	sprites []sprite
	tweens  []*spritebatch.TweenGroup
	frame   float64
	cursor  int
}

// buildPage draws a soft white disc used by every sprite.
func buildPage() *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, dotSize, dotSize))
	r := float64(dotSize) / 2
	for y := 0; y < dotSize; y++ {
		for x := 0; x < dotSize; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r) / r
			if d > 1 {
				continue
			}
			a := uint8(255 * (1 - d*d))
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return ebiten.NewImageFromImage(img)
}

var fullPage = spritebatch.UVRect{Dimensions: spritebatch.Vec2{X: 1, Y: 1}}

func (g *game) spawn() (sprite, error) {
	frame := spritebatch.Rect{
		X:      rand.Float64() * screenW,
		Y:      rand.Float64() * screenH,
		Width:  dotSize,
		Height: dotSize,
	}
	h := g.batch.AddSpriteRect(frame, fullPage, 1, spritebatch.OriginCenter)
	tr, err := spritebatch.NewTransform(g.batch, h)
	if err != nil {
		return sprite{}, err
	}
	base := 0.3 + rand.Float64()*0.5
	tr.SetScale(base, base)

	return sprite{
		tr:         tr,
		dx:         (rand.Float64() - 0.5) * 4,
		dy:         (rand.Float64() - 0.5) * 4,
		rotSpeed:   (rand.Float64() - 0.5) * 0.08,
		scaleSpeed: 1 + rand.Float64()*2,
		scaleBase:  base,
		scaleAmp:   0.05 + rand.Float64()*0.1,
		alphaSpeed: 0.5 + rand.Float64()*2,
		phase:      rand.Float64() * math.Pi * 2,
		tint: spritebatch.Color{
			R: 0.5 + rand.Float64()*0.5,
			G: 0.5 + rand.Float64()*0.5,
			B: 0.5 + rand.Float64()*0.5,
			A: 1,
		},
	}, nil
}

func (g *game) Update() error {
	g.frame++
	t := g.frame / 60.0

	if int(g.frame)%60 == 0 {
		if err := g.churn(); err != nil {
			return err
		}
	}

	live := g.tweens[:0]
	for _, tw := range g.tweens {
		tw.Update(1.0 / 60)
		if tw.Err != nil {
			return tw.Err
		}
		if !tw.Done {
			live = append(live, tw)
		}
	}
	g.tweens = live

	for i := range g.sprites {
		s := &g.sprites[i]
		tr := s.tr

		x, y := tr.X+s.dx, tr.Y+s.dy
		if x < 0 || x > screenW {
			s.dx = -s.dx
		}
		if y < 0 || y > screenH {
			s.dy = -s.dy
		}
		tr.SetPosition(x, y)
		tr.SetRotation(tr.Rotation + s.rotSpeed)

		if t >= s.popUntil {
			sc := s.scaleBase + s.scaleAmp*math.Sin(t*s.scaleSpeed+s.phase)
			tr.SetScale(sc, sc)
		}
		if err := tr.Flush(); err != nil {
			return err
		}

		c := s.tint
		c.A = 0.5 + 0.5*math.Sin(t*s.alphaSpeed+s.phase)
		if err := g.batch.SetColor(tr.Handle(), c); err != nil {
			return err
		}
	}
	return nil
}

// churn removes and respawns a window of sprites, reusing their slots, and
// flips the hidden state of another window.
func (g *game) churn() error {
	for k := 0; k < churn; k++ {
		i := (g.cursor + k) % len(g.sprites)
		if err := g.batch.RemoveSprite(g.sprites[i].tr.Handle()); err != nil {
			return err
		}
		s, err := g.spawn()
		if err != nil {
			return err
		}
		// Pop in from nothing.
		s.popUntil = g.frame/60 + 0.5
		s.tr.SetScale(0, 0)
		g.tweens = append(g.tweens, spritebatch.TweenScale(s.tr, s.scaleBase, s.scaleBase, 0.5, ease.OutBack))
		g.sprites[i] = s
	}
	for k := 0; k < hideStep; k++ {
		h := g.sprites[(g.cursor+churn+k)%len(g.sprites)].tr.Handle()
		hidden, err := g.batch.IsHidden(h)
		if err != nil {
			return err
		}
		if hidden {
			err = g.batch.ShowSprite(h)
		} else {
			err = g.batch.HideSprite(h)
		}
		if err != nil {
			return err
		}
	}
	g.cursor = (g.cursor + churn) % len(g.sprites)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 15, G: 15, B: 23, A: 255})
	g.batch.Sync(g.mesh)
	g.mesh.Draw(screen, nil)

	s := g.batch.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.0f  TPS: %.0f  sprites: %d  slots: %d  full rebuilds: %d  growths: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.batch.Len(), g.batch.Cap(), s.FullRebuilds, s.Growths))
}

func (g *game) Layout(int, int) (int, int) { return screenW, screenH }

func main() {
	g := &game{
		batch: spritebatch.New(nil, spritebatch.Options{
			InitialCapacity: count,
			GrowBy:          churn,
		}),
		mesh: spritebatch.NewMesh(buildPage()),
	}
	g.mesh.Blend = spritebatch.BlendAdd

	g.sprites = make([]sprite, count)
	for i := range g.sprites {
		s, err := g.spawn()
		if err != nil {
			log.Fatal(err)
		}
		g.sprites[i] = s
	}

	ebiten.SetWindowTitle("spritebatch — 10k Sprites")
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
