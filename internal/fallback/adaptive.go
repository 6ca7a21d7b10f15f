package fallback

func init() {
	register(genre{
		kind:       Adaptive,
		palette:    warmPalette,
		background: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
		controls:   "Move with the mouse or arrows. Catch bright orbs, dodge the red ones.",
		startLabel: "Play",
		hud: []hudItem{
			{ID: "score", Label: "Score", Initial: "0"},
			{ID: "lives", Label: "Lives", Initial: "3"},
			{ID: "level", Label: "Level", Initial: "1"},
		},
		script: adaptiveScript,
	})
}

const adaptiveScript = `const TARGET_SCORE = 1000;

const genre = {
  init: function () {
    return {
      player: { x: W / 2 - 20, y: H / 2 - 20, width: 40, height: 40 },
      orbs: [],
      spawnTimer: 0,
      lives: 3,
      level: 1,
      useMouse: false,
      score: 0
    };
  },

  update: function (s, dt) {
    const p = s.player;
    const step = dt * 60;
    let dx = 0;
    let dy = 0;
    if (keys['ArrowLeft'] || keys['KeyA']) dx -= 1;
    if (keys['ArrowRight'] || keys['KeyD']) dx += 1;
    if (keys['ArrowUp'] || keys['KeyW']) dy -= 1;
    if (keys['ArrowDown'] || keys['KeyS']) dy += 1;
    if (dx !== 0 || dy !== 0) {
      s.useMouse = false;
      p.x += dx * 6 * step;
      p.y += dy * 6 * step;
    } else if (s.useMouse || mouse.down) {
      s.useMouse = true;
      p.x += (mouse.x - p.width / 2 - p.x) * 0.15 * step;
      p.y += (mouse.y - p.height / 2 - p.y) * 0.15 * step;
    }
    p.x = Math.max(0, Math.min(W - p.width, p.x));
    p.y = Math.max(0, Math.min(H - p.height, p.y));

    s.level = 1 + Math.floor(s.score / 200);
    s.spawnTimer -= dt;
    if (s.spawnTimer <= 0) {
      s.spawnTimer = Math.max(0.25, 0.9 - s.level * 0.08);
      const bad = Math.random() < 0.25 + s.level * 0.03;
      const size = bad ? 26 : 20;
      const edge = Math.floor(Math.random() * 4);
      const orb = { x: 0, y: 0, width: size, height: size, vx: 0, vy: 0, bad: bad };
      const speed = rand(1.5, 2.5) + s.level * 0.3;
      if (edge === 0) { orb.x = rand(0, W - size); orb.y = -size; orb.vy = speed; }
      if (edge === 1) { orb.x = W; orb.y = rand(0, H - size); orb.vx = -speed; }
      if (edge === 2) { orb.x = rand(0, W - size); orb.y = H; orb.vy = -speed; }
      if (edge === 3) { orb.x = -size; orb.y = rand(0, H - size); orb.vx = speed; }
      s.orbs.push(orb);
    }

    s.orbs = s.orbs.filter(function (o) {
      o.x += o.vx * step;
      o.y += o.vy * step;
      if (isColliding(p, o)) {
        if (o.bad) {
          s.lives--;
          burst(o.x, o.y, '#FF4444', 24, 6);
          if (s.lives <= 0) finish(s, false);
        } else {
          s.score += 20;
          burst(o.x, o.y, SECONDARY, 14, 4);
        }
        return false;
      }
      return o.x > -60 && o.x < W + 60 && o.y > -60 && o.y < H + 60;
    });

    if (s.score >= TARGET_SCORE) finish(s, true);
  },

  onClick: function (s) {
    s.useMouse = true;
  },

  render: function (g, s) {
    g.fillStyle = '#1a1a2e';
    g.fillRect(0, 0, W, H);
    g.strokeStyle = 'rgba(255, 255, 255, 0.05)';
    for (let x = 0; x < W; x += 40) {
      g.beginPath();
      g.moveTo(x, 0);
      g.lineTo(x, H);
      g.stroke();
    }
    s.orbs.forEach(function (o) {
      g.fillStyle = o.bad ? '#FF4444' : SECONDARY;
      g.beginPath();
      g.arc(o.x + o.width / 2, o.y + o.height / 2, o.width / 2, 0, Math.PI * 2);
      g.fill();
    });
    const p = s.player;
    g.fillStyle = PRIMARY;
    g.fillRect(p.x, p.y, p.width, p.height);
    g.fillStyle = '#fff';
    g.font = '14px Courier New';
    g.fillText('Goal: ' + TARGET_SCORE, 12, 24);
  },

  hud: function (s) {
    setHud('score', s.score);
    setHud('lives', s.lives);
    setHud('level', s.level);
  }
};`
