package fallback

func init() {
	register(genre{
		kind:       Platformer,
		palette:    warmPalette,
		background: "linear-gradient(180deg, #87CEEB 0%, #4a90c2 100%)",
		controls:   "Arrows move. Space or Up jumps. Collect every coin.",
		startLabel: "Start Adventure",
		hud: []hudItem{
			{ID: "score", Label: "Score", Initial: "0"},
			{ID: "coins", Label: "Coins", Initial: "0/10"},
			{ID: "lives", Label: "Lives", Initial: "3"},
		},
		script: platformerScript,
	})
}

const platformerScript = `const GRAVITY = 0.6;

const genre = {
  init: function () {
    const platforms = [
      { x: 0, y: 560, width: 800, height: 40 },
      { x: 120, y: 470, width: 140, height: 16 },
      { x: 330, y: 400, width: 140, height: 16 },
      { x: 560, y: 470, width: 140, height: 16 },
      { x: 40, y: 320, width: 120, height: 16 },
      { x: 260, y: 250, width: 120, height: 16 },
      { x: 480, y: 300, width: 120, height: 16 },
      { x: 650, y: 200, width: 120, height: 16 },
      { x: 380, y: 140, width: 110, height: 16 }
    ];
    const coins = [];
    platforms.slice(1).forEach(function (pl) {
      coins.push({ x: pl.x + pl.width / 2 - 8, y: pl.y - 30, width: 16, height: 16, taken: false });
    });
    coins.push({ x: 30, y: 530, width: 16, height: 16, taken: false });
    const enemies = [
      { x: 400, y: 532, width: 28, height: 28, vx: 2, minX: 200, maxX: 760 },
      { x: 560, y: 442, width: 28, height: 28, vx: 1.5, minX: 560, maxX: 672 }
    ];
    return {
      player: { x: 40, y: 500, width: 28, height: 36, vx: 0, vy: 0, grounded: false },
      platforms: platforms,
      coins: coins,
      enemies: enemies,
      collected: 0,
      lives: 3,
      invincible: 0,
      score: 0
    };
  },

  update: function (s, dt) {
    const p = s.player;
    const step = dt * 60;
    p.vx = 0;
    if (keys['ArrowLeft'] || keys['KeyA']) p.vx = -5;
    if (keys['ArrowRight'] || keys['KeyD']) p.vx = 5;
    if ((keys['Space'] || keys['ArrowUp'] || keys['KeyW']) && p.grounded) {
      p.vy = -13;
      p.grounded = false;
      burst(p.x + p.width / 2, p.y + p.height, '#fff', 6, 2);
    }
    p.vy = Math.min(p.vy + GRAVITY * step, 15);

    p.x = Math.max(0, Math.min(W - p.width, p.x + p.vx * step));
    const prevBottom = p.y + p.height;
    p.y += p.vy * step;
    p.grounded = false;
    s.platforms.forEach(function (pl) {
      if (p.vy >= 0 && isColliding(p, pl) && prevBottom <= pl.y + 1) {
        p.y = pl.y - p.height;
        p.vy = 0;
        p.grounded = true;
      }
    });

    s.coins.forEach(function (c) {
      if (!c.taken && isColliding(p, c)) {
        c.taken = true;
        s.collected++;
        s.score += 100;
        burst(c.x + 8, c.y + 8, SECONDARY, 16, 4);
      }
    });

    s.invincible = Math.max(0, s.invincible - dt);
    s.enemies.forEach(function (e) {
      e.x += e.vx * step;
      if (e.x < e.minX || e.x > e.maxX) e.vx = -e.vx;
      if (!isColliding(p, e)) return;
      if (p.vy > 0 && prevBottom <= e.y + 8) {
        p.vy = -9;
        s.score += 50;
        burst(e.x + e.width / 2, e.y, PRIMARY, 12, 4);
        e.x = e.minX;
      } else if (s.invincible <= 0) {
        loseLife(s);
      }
    });

    if (p.y > H) loseLife(s);
    if (s.collected === s.coins.length) finish(s, true);
  },

  render: function (g, s) {
    g.fillStyle = '#87CEEB';
    g.fillRect(0, 0, W, H);
    g.fillStyle = 'rgba(255, 255, 255, 0.7)';
    g.fillRect(90, 60, 120, 30);
    g.fillRect(520, 90, 160, 34);

    s.platforms.forEach(function (pl) {
      g.fillStyle = '#8B4513';
      g.fillRect(pl.x, pl.y, pl.width, pl.height);
      g.fillStyle = '#2ECC71';
      g.fillRect(pl.x, pl.y, pl.width, 5);
    });

    g.fillStyle = '#FFD700';
    s.coins.forEach(function (c) {
      if (c.taken) return;
      g.beginPath();
      g.arc(c.x + 8, c.y + 8, 8, 0, Math.PI * 2);
      g.fill();
    });

    g.fillStyle = '#8E44AD';
    s.enemies.forEach(function (e) {
      g.fillRect(e.x, e.y, e.width, e.height);
    });

    const p = s.player;
    if (s.invincible <= 0 || Math.floor(s.invincible * 10) % 2 === 0) {
      g.fillStyle = PRIMARY;
      g.fillRect(p.x, p.y, p.width, p.height);
      g.fillStyle = '#fff';
      g.fillRect(p.x + 6, p.y + 8, 6, 6);
      g.fillRect(p.x + 16, p.y + 8, 6, 6);
    }
  },

  hud: function (s) {
    setHud('score', s.score);
    setHud('coins', s.collected + '/' + s.coins.length);
    setHud('lives', s.lives);
  }
};

function loseLife(s) {
  s.lives--;
  s.invincible = 1.5;
  burst(s.player.x + 14, s.player.y + 18, '#FF4444', 24, 5);
  s.player.x = 40;
  s.player.y = 500;
  s.player.vx = 0;
  s.player.vy = 0;
  if (s.lives <= 0) finish(s, false);
}`
