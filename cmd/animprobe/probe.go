package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer/joint_buffer"
	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
	"github.com/Carmen-Shannon/oxy-anim/engine/skeleton"
)

var (
	errNoClips      = errors.New("model has no animation clips")
	errUnknownJoint = errors.New("unknown joint")
)

// probe plays one clip on a rig and reports a joint and the skin buffer after every frame.
type probe struct {
	rig    *rig.Rig
	joint  *skeleton.Joint
	buffer joint_buffer.JointBuffer
}

// frameReport is what the probe logs for one frame.
type frameReport struct {
	Frame       int
	Time        float32
	State       animator.PlaybackState
	Joint       string
	Translation [3]float32
	SkinBytes   int
}

func (r frameReport) String() string {
	s := fmt.Sprintf("frame %d t=%.3f %s", r.Frame, r.Time, r.State)
	if r.Joint != "" {
		s += fmt.Sprintf(" %s=(%.3f, %.3f, %.3f)", r.Joint, r.Translation[0], r.Translation[1], r.Translation[2])
	}
	return s + fmt.Sprintf(" skin=%dB", r.SkinBytes)
}

// newProbe starts cfg.Clip (or the first clip) on r. The probed joint is cfg.Joint, or the
// first root when no joint is named.
func newProbe(cfg Config, r *rig.Rig, buffer joint_buffer.JointBuffer) (*probe, error) {
	clip := cfg.Clip
	if clip == "" {
		names := r.AnimationNames()
		if len(names) == 0 {
			return nil, fmt.Errorf("rig %q: %w", r.Name(), errNoClips)
		}
		clip = names[0]
	}
	if err := r.Play(clip, cfg.Loop); err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(r.AnimationNames(), ", "))
	}

	p := &probe{rig: r, buffer: buffer}
	skel := r.Skeleton()
	switch {
	case cfg.Joint != "":
		j, ok := skel.GetJoint(cfg.Joint)
		if !ok {
			return nil, fmt.Errorf("rig %q: joint %q: %w", r.Name(), cfg.Joint, errUnknownJoint)
		}
		p.joint = j
	case len(skel.Roots()) > 0:
		p.joint, _ = skel.Joint(skel.Roots()[0])
	}
	return p, nil
}

// report reads the state left by the last update and stages the first skin's joint matrices.
func (p *probe) report(frame int) (frameReport, error) {
	c := p.rig.Controller()
	rep := frameReport{Frame: frame, Time: c.CurrentTime(), State: c.State()}
	if p.joint != nil {
		rep.Joint = p.joint.Name()
		rep.Translation = p.joint.WorldTranslation()
	}
	if skins := p.rig.Skins(); len(skins) > 0 {
		w, err := p.buffer.Stage(skins[0])
		if err != nil {
			return rep, err
		}
		rep.SkinBytes = len(w.Data)
	}
	return rep, nil
}

// reloadable reports whether a changed file affects the model: the model itself or a buffer next to it.
func reloadable(changed, model string) bool {
	changed, model = filepath.Clean(changed), filepath.Clean(model)
	if changed == model {
		return true
	}
	return filepath.Dir(changed) == filepath.Dir(model) && strings.EqualFold(filepath.Ext(changed), ".bin")
}
