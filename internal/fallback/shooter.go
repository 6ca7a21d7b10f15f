package fallback

func init() {
	register(genre{
		kind:       Shooter,
		palette:    warmPalette,
		background: "radial-gradient(circle at center, #0b0c2a 0%, #000 100%)",
		controls:   "Arrows or WASD move. Space fires. Survive five waves.",
		startLabel: "Launch",
		hud: []hudItem{
			{ID: "score", Label: "Score", Initial: "0"},
			{ID: "wave", Label: "Wave", Initial: "1/5"},
			{ID: "lives", Label: "Lives", Initial: "3"},
		},
		script: shooterScript,
	})
}

const shooterScript = `const genre = {
  init: function () {
    const stars = [];
    for (let i = 0; i < 80; i++) {
      stars.push({ x: Math.random() * W, y: Math.random() * H, size: rand(1, 3), speed: rand(0.5, 2) });
    }
    return {
      player: { x: W / 2 - 20, y: H - 70, width: 40, height: 40, cooldown: 0 },
      bullets: [],
      enemyBullets: [],
      enemies: [],
      stars: stars,
      wave: 1,
      waves: 5,
      toSpawn: 8,
      spawnTimer: 0,
      lives: 3,
      invincible: 0,
      score: 0
    };
  },

  update: function (s, dt) {
    const p = s.player;
    const step = dt * 60;
    if ((keys['ArrowLeft'] || keys['KeyA']) && p.x > 0) p.x -= 6 * step;
    if ((keys['ArrowRight'] || keys['KeyD']) && p.x < W - p.width) p.x += 6 * step;
    if ((keys['ArrowUp'] || keys['KeyW']) && p.y > H / 2) p.y -= 5 * step;
    if ((keys['ArrowDown'] || keys['KeyS']) && p.y < H - p.height) p.y += 5 * step;

    p.cooldown -= dt;
    if (keys['Space'] && p.cooldown <= 0) {
      s.bullets.push({ x: p.x + p.width / 2 - 3, y: p.y - 10, width: 6, height: 14 });
      p.cooldown = 0.18;
    }

    s.stars.forEach(function (st) {
      st.y += st.speed * step;
      if (st.y > H) st.y = 0;
    });

    s.spawnTimer -= dt;
    if (s.toSpawn > 0 && s.spawnTimer <= 0) {
      s.toSpawn--;
      s.spawnTimer = Math.max(0.3, 1.2 - s.wave * 0.15);
      s.enemies.push({
        x: rand(20, W - 60),
        y: -40,
        width: 36,
        height: 30,
        hp: 1 + Math.floor(s.wave / 2),
        vx: rand(-1.5, 1.5),
        vy: rand(1, 1.5) + s.wave * 0.3,
        fire: rand(1, 3)
      });
    }

    s.bullets = s.bullets.filter(function (b) {
      b.y -= 10 * step;
      return b.y + b.height > 0;
    });

    s.enemies = s.enemies.filter(function (e) {
      e.x += e.vx * step;
      e.y += e.vy * step;
      if (e.x < 0 || e.x > W - e.width) e.vx = -e.vx;
      e.fire -= dt;
      if (e.fire <= 0) {
        e.fire = rand(1.5, 3.5) - s.wave * 0.15;
        s.enemyBullets.push({ x: e.x + e.width / 2 - 3, y: e.y + e.height, width: 6, height: 10 });
      }
      for (let i = 0; i < s.bullets.length; i++) {
        if (isColliding(s.bullets[i], e)) {
          s.bullets.splice(i, 1);
          e.hp--;
          burst(e.x + e.width / 2, e.y + e.height / 2, SECONDARY, 6, 3);
          break;
        }
      }
      if (e.hp <= 0) {
        s.score += 100 * s.wave;
        burst(e.x + e.width / 2, e.y + e.height / 2, PRIMARY, 24, 6);
        return false;
      }
      if (isColliding(e, p)) {
        hitPlayer(s);
        return false;
      }
      return e.y < H + 40;
    });

    s.enemyBullets = s.enemyBullets.filter(function (b) {
      b.y += 5 * step;
      if (isColliding(b, p)) {
        hitPlayer(s);
        return false;
      }
      return b.y < H;
    });

    s.invincible = Math.max(0, s.invincible - dt);

    if (s.toSpawn === 0 && s.enemies.length === 0) {
      if (s.wave >= s.waves) {
        finish(s, true);
        return;
      }
      s.wave++;
      s.toSpawn = 8 + s.wave * 3;
      s.spawnTimer = 1.5;
      burst(W / 2, H / 3, SECONDARY, 40, 6);
    }
  },

  render: function (g, s) {
    g.fillStyle = '#05051a';
    g.fillRect(0, 0, W, H);
    g.fillStyle = '#fff';
    s.stars.forEach(function (st) {
      g.fillRect(st.x, st.y, st.size, st.size);
    });

    const p = s.player;
    if (s.invincible <= 0 || Math.floor(s.invincible * 10) % 2 === 0) {
      g.fillStyle = PRIMARY;
      g.beginPath();
      g.moveTo(p.x + p.width / 2, p.y);
      g.lineTo(p.x + p.width, p.y + p.height);
      g.lineTo(p.x, p.y + p.height);
      g.closePath();
      g.fill();
    }

    g.fillStyle = SECONDARY;
    s.bullets.forEach(function (b) {
      g.fillRect(b.x, b.y, b.width, b.height);
    });
    g.fillStyle = '#FF4444';
    s.enemyBullets.forEach(function (b) {
      g.fillRect(b.x, b.y, b.width, b.height);
    });

    s.enemies.forEach(function (e) {
      g.fillStyle = '#E74C3C';
      g.fillRect(e.x, e.y, e.width, e.height);
      g.fillStyle = '#111';
      g.fillRect(e.x + 8, e.y + 8, 6, 6);
      g.fillRect(e.x + e.width - 14, e.y + 8, 6, 6);
    });
  },

  hud: function (s) {
    setHud('score', s.score);
    setHud('wave', s.wave + '/' + s.waves);
    setHud('lives', s.lives);
  }
};

function hitPlayer(s) {
  if (s.invincible > 0) return;
  s.lives--;
  s.invincible = 1.5;
  burst(s.player.x + s.player.width / 2, s.player.y + s.player.height / 2, '#FFAA00', 30, 6);
  if (s.lives <= 0) finish(s, false);
}`
