package fallback

func init() {
	register(genre{
		kind:       Rhythm,
		palette:    warmPalette,
		background: "linear-gradient(135deg, #1e0533 0%, #3a0ca3 50%, #7209b7 100%)",
		controls:   "Press D F J K as notes reach the line.",
		startLabel: "Start Song",
		hud: []hudItem{
			{ID: "score", Label: "Score", Initial: "0"},
			{ID: "combo", Label: "Combo", Initial: "0"},
			{ID: "accuracy", Label: "Accuracy", Initial: "100%"},
			{ID: "misses", Label: "Misses", Initial: "0/15"},
		},
		script: rhythmScript,
	})
}

const rhythmScript = `const LANES = ['KeyD', 'KeyF', 'KeyJ', 'KeyK'];
const LANE_LABELS = ['D', 'F', 'J', 'K'];
const LANE_WIDTH = 100;
const LANE_X = (W - LANE_WIDTH * 4) / 2;
const HIT_Y = 500;

const genre = {
  init: function () {
    const notes = [];
    let t = 1.5;
    for (let i = 0; i < 80; i++) {
      notes.push({ lane: Math.floor(Math.random() * 4), time: t, hit: false, missed: false });
      t += pick([0.25, 0.5, 0.5, 0.75]);
    }
    return {
      notes: notes,
      clock: 0,
      speed: 300,
      flashes: [0, 0, 0, 0],
      combo: 0,
      hits: 0,
      judged: 0,
      misses: 0,
      maxMisses: 15,
      feedback: '',
      feedbackTimer: 0,
      score: 0
    };
  },

  update: function (s, dt) {
    s.clock += dt;
    s.feedbackTimer = Math.max(0, s.feedbackTimer - dt);
    for (let i = 0; i < 4; i++) s.flashes[i] = Math.max(0, s.flashes[i] - dt * 4);

    s.notes.forEach(function (n) {
      if (!n.hit && !n.missed && s.clock - n.time > 0.2) {
        n.missed = true;
        s.misses++;
        s.judged++;
        s.combo = 0;
        showFeedback(s, 'Miss');
      }
    });

    if (s.misses >= s.maxMisses) {
      finish(s, false);
      return;
    }
    const last = s.notes[s.notes.length - 1];
    if (last.hit || last.missed) finish(s, accuracy(s) >= 60);
  },

  onKey: function (s, code) {
    const lane = LANES.indexOf(code);
    if (lane < 0) return;
    s.flashes[lane] = 1;
    let best = null;
    s.notes.forEach(function (n) {
      if (n.lane !== lane || n.hit || n.missed) return;
      const diff = Math.abs(n.time - s.clock);
      if (diff <= 0.2 && (!best || diff < Math.abs(best.time - s.clock))) best = n;
    });
    if (!best) {
      s.combo = 0;
      return;
    }
    const diff = Math.abs(best.time - s.clock);
    best.hit = true;
    s.hits++;
    s.judged++;
    s.combo++;
    const base = diff < 0.07 ? 300 : diff < 0.14 ? 200 : 100;
    s.score += base + s.combo * 5;
    showFeedback(s, diff < 0.07 ? 'Perfect' : diff < 0.14 ? 'Great' : 'Good');
    burst(LANE_X + lane * LANE_WIDTH + LANE_WIDTH / 2, HIT_Y, PRIMARY, 12, 4);
  },

  render: function (g, s) {
    g.fillStyle = '#120024';
    g.fillRect(0, 0, W, H);
    for (let i = 0; i < 4; i++) {
      const x = LANE_X + i * LANE_WIDTH;
      g.fillStyle = i % 2 === 0 ? 'rgba(255, 255, 255, 0.05)' : 'rgba(255, 255, 255, 0.1)';
      g.fillRect(x, 0, LANE_WIDTH, H);
      if (s.flashes[i] > 0) {
        g.globalAlpha = s.flashes[i] * 0.5;
        g.fillStyle = SECONDARY;
        g.fillRect(x, 0, LANE_WIDTH, H);
        g.globalAlpha = 1;
      }
      g.fillStyle = '#fff';
      g.font = 'bold 20px Courier New';
      g.fillText(LANE_LABELS[i], x + LANE_WIDTH / 2 - 6, HIT_Y + 60);
    }
    g.fillStyle = PRIMARY;
    g.fillRect(LANE_X, HIT_Y - 3, LANE_WIDTH * 4, 6);

    s.notes.forEach(function (n) {
      if (n.hit || n.missed) return;
      const y = HIT_Y - (n.time - s.clock) * s.speed;
      if (y < -30 || y > H) return;
      g.fillStyle = SECONDARY;
      g.fillRect(LANE_X + n.lane * LANE_WIDTH + 10, y - 12, LANE_WIDTH - 20, 24);
    });

    if (s.feedbackTimer > 0) {
      g.fillStyle = '#fff';
      g.font = 'bold 28px Courier New';
      g.textAlign = 'center';
      g.fillText(s.feedback, W / 2, 200);
      g.textAlign = 'left';
    }
  },

  hud: function (s) {
    setHud('score', s.score);
    setHud('combo', s.combo);
    setHud('accuracy', accuracy(s) + '%');
    setHud('misses', s.misses + '/' + s.maxMisses);
  }
};

function accuracy(s) {
  if (s.judged === 0) return 100;
  return Math.round((s.hits / s.judged) * 100);
}

function showFeedback(s, text) {
  s.feedback = text;
  s.feedbackTimer = 0.5;
}`
