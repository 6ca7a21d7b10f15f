package fallback

func init() {
	register(genre{
		kind:       Racing,
		palette:    warmPalette,
		background: "linear-gradient(180deg, #1a1a2e 0%, #16213e 60%, #0f3460 100%)",
		controls:   "Arrows steer and accelerate. Space for nitro.",
		startLabel: "Start Race",
		hud: []hudItem{
			{ID: "score", Label: "Distance", Initial: "0"},
			{ID: "speed", Label: "Speed", Initial: "0"},
			{ID: "lap", Label: "Lap", Initial: "1/5"},
			{ID: "crashes", Label: "Crashes", Initial: "0/5"},
		},
		script: racingScript,
	})
}

const racingScript = `const genre = {
  init: function () {
    const trackX = 200;
    const trackWidth = 400;
    const lines = [];
    for (let i = 0; i < 15; i++) {
      lines.push({ x: trackX + trackWidth / 2 - 5, y: i * 50, width: 10, height: 30 });
    }
    return {
      trackX: trackX,
      trackWidth: trackWidth,
      lines: lines,
      player: { x: 375, y: 480, width: 50, height: 80, speed: 3, maxSpeed: 12, boost: 0 },
      cars: [],
      distance: 0,
      lap: 1,
      laps: 5,
      crashes: 0,
      maxCrashes: 5,
      invincible: 0,
      score: 0
    };
  },

  update: function (s, dt) {
    const p = s.player;
    const step = dt * 60;
    if (keys['ArrowLeft'] && p.x > s.trackX + 10) p.x -= 6 * step;
    if (keys['ArrowRight'] && p.x < s.trackX + s.trackWidth - p.width - 10) p.x += 6 * step;
    if (keys['ArrowUp']) {
      p.speed = Math.min(p.speed + 0.3 * step, p.maxSpeed);
    } else {
      p.speed = Math.max(p.speed - 0.15 * step, 3);
    }
    if (keys['ArrowDown']) p.speed = Math.max(p.speed - 0.4 * step, 0);
    if (keys['Space'] && p.boost <= 0) {
      p.boost = 1;
      burst(p.x + p.width / 2, p.y + p.height, '#FFFF00', 14, 3);
    }

    let speed = p.speed;
    if (p.boost > 0) {
      speed += p.boost * 5;
      p.boost -= 0.01 * step;
    }

    s.lines.forEach(function (l) {
      l.y += speed * step;
      if (l.y > H) l.y -= H + 50;
    });

    s.distance += speed * step * 0.1;
    s.score = Math.floor(s.distance);
    if (s.distance > 1000 * s.lap) {
      s.lap++;
      p.maxSpeed += 1;
      burst(W / 2, 60, SECONDARY, 30, 5);
      if (s.lap > s.laps) {
        s.lap = s.laps;
        finish(s, true);
        return;
      }
    }

    if (Math.random() < 0.02 * step) {
      s.cars.push({
        x: s.trackX + 20 + Math.floor(Math.random() * 5) * 75,
        y: -90,
        width: 50,
        height: 80,
        speed: rand(1, 4),
        color: pick(['#FF4444', '#44FF44', '#4444FF', '#FFFF44', '#FF44FF'])
      });
    }

    s.invincible = Math.max(0, s.invincible - dt);
    s.cars = s.cars.filter(function (c) {
      c.y += (speed - c.speed) * step;
      if (s.invincible <= 0 && isColliding(p, c)) {
        s.crashes++;
        s.invincible = 1;
        p.speed *= 0.5;
        burst(p.x + p.width / 2, p.y + p.height / 2, '#FFAA00', 24, 6);
        if (s.crashes >= s.maxCrashes) finish(s, false);
      }
      return c.y < H + 100 && c.y > -300;
    });
  },

  render: function (g, s) {
    g.fillStyle = '#2d5016';
    g.fillRect(0, 0, W, H);
    g.fillStyle = '#444';
    g.fillRect(s.trackX, 0, s.trackWidth, H);
    g.fillStyle = '#fff';
    g.fillRect(s.trackX - 6, 0, 6, H);
    g.fillRect(s.trackX + s.trackWidth, 0, 6, H);
    g.fillStyle = '#FFFF00';
    s.lines.forEach(function (l) {
      g.fillRect(l.x, l.y, l.width, l.height);
    });

    s.cars.forEach(function (c) {
      drawCar(g, c, c.color, false);
    });

    const p = s.player;
    if (s.invincible <= 0 || Math.floor(s.invincible * 10) % 2 === 0) {
      drawCar(g, p, PRIMARY, true);
    }
    if (p.boost > 0) {
      g.fillStyle = SECONDARY;
      g.fillRect(p.x + 10, p.y + p.height, 8, 12 + Math.random() * 10);
      g.fillRect(p.x + p.width - 18, p.y + p.height, 8, 12 + Math.random() * 10);
    }

    g.fillStyle = '#fff';
    g.font = '14px Courier New';
    g.fillText('Lap ' + s.lap + ' of ' + s.laps, 12, 24);
  },

  hud: function (s) {
    setHud('score', s.score);
    setHud('speed', Math.floor(s.player.speed * 10));
    setHud('lap', s.lap + '/' + s.laps);
    setHud('crashes', s.crashes + '/' + s.maxCrashes);
  }
};

function drawCar(g, c, color, player) {
  g.fillStyle = color;
  g.fillRect(c.x, c.y, c.width, c.height);
  g.fillStyle = '#111';
  g.fillRect(c.x + 8, c.y + 10, c.width - 16, 16);
  g.fillRect(c.x - 4, c.y + 8, 6, 18);
  g.fillRect(c.x + c.width - 2, c.y + 8, 6, 18);
  g.fillRect(c.x - 4, c.y + c.height - 26, 6, 18);
  g.fillRect(c.x + c.width - 2, c.y + c.height - 26, 6, 18);
  if (player) {
    g.fillStyle = '#fff';
    g.fillRect(c.x + c.width / 2 - 3, c.y + 30, 6, 30);
  }
}`
